package source

import "context"

// Document is one raw record streamed from the document store. Immutable
// once produced; it exists only for the duration of a run.
type Document struct {
	Collection string
	ID         string
	Fields     map[string]Value
}

// Field returns the named field, or the null Value when absent.
func (d Document) Field(name string) Value {
	if v, ok := d.Fields[name]; ok {
		return v
	}
	return Null()
}

// Source is the document-store collaborator boundary. The only interaction
// contract the pipeline assumes is "stream all documents in a named
// collection" — no query or filter capability.
type Source interface {
	Scan(ctx context.Context, collection string) ([]Document, error)
}
