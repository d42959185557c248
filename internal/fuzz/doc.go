// Package fuzztests houses Go fuzz harnesses that exercise the ember
// checking pipeline (dump bytes -> decoder -> attribute pass). Its goal is
// to smoke test robustness and guard against panics or allocator explosions
// on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые скармливают байты
// декодеру дампов и, когда декодирование удаётся, проверяют инварианты
// модуля и прогоняют его через проход атрибутов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/hirjson, internal/sema,
// internal/diag, internal/testkit.

package fuzztests
