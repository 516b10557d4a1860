// Package generator turns expression subtrees back into Python source text.
//
// Назначение: текст для сообщений диагностик и для замен в фиксах.
// Не делает: форматирование целых файлов, сохранение комментариев.
// Зависимости: internal/ast, internal/source.
//
// Grouping parentheses are kept as they were written (they live in the tree
// as Group nodes), literals are reproduced from their original token text,
// and spacing is canonical: one space around binary operators, ", " between
// elements.
package generator
