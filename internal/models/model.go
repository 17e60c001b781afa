package models

import "github.com/pocketbase/pocketbase/core"

// Model and BaseModel alias the core package's record base types so that
// query.BaseQuery[T] and friends can constrain on a single local name
// without importing core everywhere a model is declared.
type Model = core.Model

type BaseModel = core.BaseModel
