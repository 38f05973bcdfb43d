// Package templates holds files embedded into the retemplate binary.
//
// init/ holds files stamped into a project by `retemplate init`.
package templates

import _ "embed"

// StarterConfig is the content of init/retemplate.yaml, written by `retemplate init`.
//
//go:embed init/retemplate.yaml
var StarterConfig string
