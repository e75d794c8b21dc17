package core

import "denticore/pkg/domain"

type (
	Role         = domain.Role
	ShadeType    = domain.ShadeType
	Severity     = domain.Severity
	Layer        = domain.Layer
	Plan         = domain.Plan
	CaseContext  = domain.CaseContext
	CatalogShade = domain.CatalogShade
	Correction   = domain.Correction
	Result       = domain.Result
)

const (
	RoleBody   = domain.RoleBody
	RoleEnamel = domain.RoleEnamel
	RoleOther  = domain.RoleOther
)

const (
	ShadeTypeBody      = domain.ShadeTypeBody
	ShadeTypeDentin    = domain.ShadeTypeDentin
	ShadeTypeUniversal = domain.ShadeTypeUniversal
	ShadeTypeEnamel    = domain.ShadeTypeEnamel
)

const (
	SeverityCorrect   = domain.SeverityCorrect
	SeverityAugment   = domain.SeverityAugment
	SeverityNormalize = domain.SeverityNormalize
)
