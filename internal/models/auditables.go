package models

import "github.com/maarten-vizzerz/comaker/internal/historie"

// RegisterAuditables declares the closed set of tracked types. Mutations on
// any other table bypass the historie tracker entirely.
func RegisterAuditables(reg *historie.Registry) {
	reg.Register(func() historie.Auditable { return &User{} })
	reg.Register(func() historie.Auditable { return &Vestiging{} })
	reg.Register(func() historie.Auditable { return &Leverancier{} })
	reg.Register(func() historie.Auditable { return &Project{} })
	reg.Register(func() historie.Auditable { return &Contract{} })
	reg.Register(func() historie.Auditable { return &ProjectFase{} })
	reg.Register(func() historie.Auditable { return &ProjectFaseDocument{} })
	reg.Register(func() historie.Auditable { return &ProjectFaseCommentaar{} })
}
