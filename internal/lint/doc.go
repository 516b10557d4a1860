// Package lint hosts the rule registry and the traversal that feeds parsed
// files to rules.
//
// Назначение: реестр правил, контекст правила, обход AST, подавление через # noqa.
// Не делает: загрузку файлов, рендер диагностик, применение фиксов.
// Зависимости: internal/ast, internal/comparable, internal/generator, internal/diag.
package lint
