package storage

import (
	"github.com/sandeepkv93/aitodo/internal/model"
)

// Todo schema versions. A store written before versioning existed reads as 0.
const (
	TodoSchemaLegacy         = 0
	TodoSchemaThreePriority  = 1
	TodoSchemaTwoStateStatus = 2

	CurrentTodoSchema = TodoSchemaTwoStateStatus
)

// UpgradeTodos applies every schema step after from and returns the migrated
// collection together with the version it now conforms to. Data already at
// CurrentTodoSchema is returned unchanged.
func UpgradeTodos(todos []model.Todo, from int) ([]model.Todo, int) {
	if from >= CurrentTodoSchema {
		return todos, from
	}
	out := model.CloneTodos(todos)
	version := from
	if version < TodoSchemaThreePriority {
		for i := range out {
			out[i].Priority = model.NormalizePriority(out[i].Priority)
		}
		version = TodoSchemaThreePriority
	}
	if version < TodoSchemaTwoStateStatus {
		for i := range out {
			if out[i].Status != model.StatusCompleted {
				out[i].Status = model.StatusPending
			}
		}
		version = TodoSchemaTwoStateStatus
	}
	return out, version
}
