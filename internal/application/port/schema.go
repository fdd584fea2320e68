package port

// SchemaProvider produces JSON schemas by document kind.
type SchemaProvider interface {
	Kinds() []string
	Schema(kind string) ([]byte, error)
}
