package domain

// WorkspaceSpec describes where a payflow workspace is created.
type WorkspaceSpec struct {
	Root string
}
