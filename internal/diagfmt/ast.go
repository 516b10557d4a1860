package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"setlint/internal/ast"
	"setlint/internal/source"
)

// ASTNodeOutput представляет узел AST для JSON вывода
type ASTNodeOutput struct {
	Type     string          `json:"type"` // "File", "Stmt" или "Expr"
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type astDumper struct {
	b  *ast.Builder
	fs *source.FileSet
}

// leafText возвращает исходный текст только для листьев: имён и литералов.
func (d astDumper) leafText(expr *ast.Expr) string {
	switch expr.Kind {
	case ast.ExprName, ast.ExprLit:
		return d.fs.Text(expr.Span)
	}
	return ""
}

func (d astDumper) expr(id ast.ExprID) ASTNodeOutput {
	expr := d.b.Exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "<nil>"}
	}
	node := ASTNodeOutput{
		Type: "Expr",
		Kind: expr.Kind.String(),
		Span: expr.Span,
		Text: d.leafText(expr),
	}
	d.b.Exprs.Children(id, func(child ast.ExprID) {
		node.Children = append(node.Children, d.expr(child))
	})
	return node
}

func (d astDumper) stmt(id ast.StmtID) ASTNodeOutput {
	st := d.b.Stmts.Get(id)
	if st == nil {
		return ASTNodeOutput{Type: "Stmt", Kind: "<nil>"}
	}
	node := ASTNodeOutput{
		Type: "Stmt",
		Kind: st.Kind.String(),
		Span: st.Span,
	}
	d.b.Stmts.Children(id,
		func(child ast.ExprID) { node.Children = append(node.Children, d.expr(child)) },
		func(child ast.StmtID) { node.Children = append(node.Children, d.stmt(child)) },
	)
	return node
}

// BuildASTOutput собирает дерево файла без сериализации.
func BuildASTOutput(b *ast.Builder, fileID ast.FileID, fs *source.FileSet) (ASTNodeOutput, error) {
	file := b.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file %d not found", fileID)
	}
	d := astDumper{b: b, fs: fs}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	if f := fs.Get(file.Span.File); f != nil {
		root.Text = f.Path
	}
	for _, st := range file.Body {
		root.Children = append(root.Children, d.stmt(st))
	}
	return root, nil
}

// FormatASTPretty выводит дерево в виде псевдографики.
func FormatASTPretty(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildASTOutput(b, fileID, fs)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "File %s\n", root.Text); err != nil {
		return err
	}
	return writeASTChildren(w, root.Children, "", fs)
}

func writeASTChildren(w io.Writer, nodes []ASTNodeOutput, prefix string, fs *source.FileSet) error {
	for i, node := range nodes {
		last := i == len(nodes)-1
		branch, indent := "├─ ", "│  "
		if last {
			branch, indent = "└─ ", "   "
		}
		start, _ := fs.Resolve(node.Span)
		line := fmt.Sprintf("%s%s%s", prefix, branch, node.Kind)
		if node.Text != "" {
			line += fmt.Sprintf(" %q", node.Text)
		}
		if _, err := fmt.Fprintf(w, "%s (%d:%d)\n", line, start.Line, start.Col); err != nil {
			return err
		}
		if err := writeASTChildren(w, node.Children, prefix+indent, fs); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTJSON выводит дерево в JSON формате
func FormatASTJSON(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildASTOutput(b, fileID, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}
