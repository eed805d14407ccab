package domain

import (
	interfaces "spectre/internal/domain/interfaces"
	types "spectre/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	AlgorithmVersion = types.AlgorithmVersion
	Purpose          = types.Purpose
	ResultType       = types.ResultType
	Counter          = types.Counter
	UserKey          = types.UserKey
	SiteKey          = types.SiteKey
	SiteParams       = types.SiteParams
	ResultKey        = types.ResultKey
	Identicon        = types.Identicon
	Operation        = types.Operation
	Request          = types.Request
	Response         = types.Response
	Error            = types.Error
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KDF            = interfaces.KDF
	MAC            = interfaces.MAC
	Algorithm      = interfaces.Algorithm
	Authentication = interfaces.Authentication
	SessionService = interfaces.SessionService
)
