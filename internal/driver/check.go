// Package driver orchestrates dump checking: читает файлы *.hir.json,
// декодирует их и прогоняет проход атрибутов — по одному файлу или по
// директории параллельно.
//
// Нечитаемый файл и битый дамп превращаются в диагностики внутри Bag
// результата; Go-ошибки пакет возвращает только за обход директории и
// отмену контекста.
package driver

import (
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"

	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/hirjson"
	"ember/internal/observ"
	"ember/internal/project"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/target"
)

// Options содержит опции проверки дампов.
type Options struct {
	// Target передаётся проходу атрибутов; пустой triple означает
	// target.Default().
	Target target.Spec
	// Config включает необязательные правила прохода.
	Config sema.Config
	// MaxDiagnostics ограничивает Bag каждого файла; <=0 означает
	// project.DefaultMaxDiagnostics.
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	// Cache включает дисковый кэш результатов; nil выключает его.
	Cache *DiskCache
	// Jobs ограничивает параллелизм CheckDir; <=0 означает GOMAXPROCS.
	Jobs int
	// Progress получает события хода проверки; nil выключает их.
	Progress ProgressSink
}

func (o Options) targetSpec() target.Spec {
	if o.Target.Triple == "" {
		return target.Default()
	}
	return o.Target
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return project.DefaultMaxDiagnostics
}

// Result описывает проверку одного дампа.
type Result struct {
	Path    string          // путь к файлу дампа
	FileSet *source.FileSet // встроенный исходник; при битом дампе ещё и сам дамп
	// Module остаётся nil, если файл не прочитался, не декодировался
	// или результат пришёл из кэша.
	Module    *hir.Module
	Bag       *diag.Bag
	FromCache bool
}

// CheckFile проверяет один дамп. Сбои чтения и декодирования становятся
// диагностиками в Result.Bag, поэтому Go-ошибка отсюда не возвращается.
func CheckFile(path string, opts Options) *Result {
	return checkDump(path, opts)
}

func checkDump(path string, opts Options) *Result {
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer == nil || idx < 0 {
			return
		}
		timer.End(idx, note)
	}

	maxDiag := opts.maxDiagnostics()

	emitEvent(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	readIdx := begin("read")
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	end(readIdx, "")
	if err != nil {
		fileSet := source.NewFileSet()
		fileID := fileSet.AddVirtual(path, nil)
		bag := diag.NewBag(maxDiag)
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+err.Error()))
		res := &Result{Path: path, FileSet: fileSet, Bag: bag}
		finishDump(res, opts, timer)
		emitEvent(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusError, Err: err})
		return res
	}

	var (
		res *Result
		key project.Digest
	)
	if opts.Cache != nil {
		key = cacheKey(data, opts)
		cacheIdx := begin("cache")
		res = lookupCached(opts.Cache, key, path, maxDiag)
		note := "miss"
		if res != nil {
			note = "hit"
		}
		end(cacheIdx, note)
	}

	if res == nil {
		res = decodeAndCheck(path, data, opts, begin, end)
		if opts.Cache != nil && res.Module != nil {
			_ = opts.Cache.Put(key, payloadForResult(res)) //nolint:errcheck // кэш best-effort
		}
	}

	finishDump(res, opts, timer)

	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emitEvent(opts.Progress, Event{File: path, Stage: StageCheck, Status: status})
	return res
}

func decodeAndCheck(path string, data []byte, opts Options, begin func(string) int, end func(int, string)) *Result {
	fileSet := source.NewFileSet()
	bag := diag.NewBag(opts.maxDiagnostics())
	res := &Result{Path: path, FileSet: fileSet, Bag: bag}

	emitEvent(opts.Progress, Event{File: path, Stage: StageDecode, Status: StatusWorking})
	decodeIdx := begin("decode")
	mod, _, err := hirjson.Decode(fileSet, path, data)
	if err != nil {
		end(decodeIdx, "")
		// Дамп регистрируем как виртуальный файл, чтобы диагностика
		// могла указать на байт, где декодер споткнулся.
		dumpID := fileSet.AddVirtual(path, data)
		span := source.Span{File: dumpID}
		msg := fmt.Sprintf("malformed HIR dump: %v", err)
		var decErr *hirjson.DecodeError
		if errors.As(err, &decErr) {
			msg = fmt.Sprintf("malformed HIR dump: %v", decErr.Err)
			if decErr.Offset > 0 {
				if off, convErr := safecast.Conv[uint32](decErr.Offset); convErr == nil {
					span.Start, span.End = off, off
				}
			}
		}
		bag.Add(diag.NewError(diag.IOBadDump, span, msg))
		return res
	}
	itemsNote := ""
	if mod != nil {
		itemsNote = fmt.Sprintf("items=%d", len(mod.Items))
	}
	end(decodeIdx, itemsNote)
	res.Module = mod

	emitEvent(opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})
	checkIdx := begin("check")
	sema.Check(mod, sema.Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Target:   opts.targetSpec(),
		Config:   opts.Config,
	})
	end(checkIdx, fmt.Sprintf("diags=%d", bag.Len()))

	return res
}

// finishDump применяет фильтрацию диагностик и дописывает тайминги.
// Кэш к этому моменту уже заполнен: он хранит сырой результат прохода.
func finishDump(res *Result, opts Options, timer *observ.Timer) {
	if opts.IgnoreWarnings {
		res.Bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity != diag.SevWarning && d.Severity != diag.SevInfo
		})
	}

	if opts.WarningsAsErrors {
		res.Bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
		// Пересортировываем после изменения severity
		res.Bag.Sort()
	}

	if timer != nil {
		report := timer.Report()
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "file",
			Path:    res.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
}
