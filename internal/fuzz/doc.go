// Package fuzztests houses Go fuzz harnesses for the lint pipeline
// (source -> lexer -> parser -> rules -> fix). They guard against panics,
// hangs and fixes that break the file they rewrite.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер
// и правила; проверять, что применённый fix не ломает синтаксис.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
