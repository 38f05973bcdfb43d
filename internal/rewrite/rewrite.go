// Package rewrite converts BMAD template text into RAPID-AI template text.
//
// The conversion is an ordered list of Steps. Order matters: the rooted path
// prefix must be replaced before its unrooted suffix, longer brand variants
// before the shorter ones they contain, and the trademark footer clean-up
// only after the brand rewrite has run.
package rewrite

import (
	"regexp"
	"strings"
)

// Default destination brand names.
const (
	DefaultBrand      = "RAPID-AI"
	DefaultShortBrand = "RAPID"
)

// Source-side literals. These are fixed; only the destination brand is configurable.
const (
	headerBanner = "<!-- Powered by BMAD™ Core -->"
	oldRoot      = ".bmad-core/"
	oldRootBare  = "bmad-core/"
	newRoot      = "src/rapid/"
	newCommand   = "/rapid"
)

var (
	commentedHeaderRe = regexp.MustCompile(`(?m)^# ` + regexp.QuoteMeta(headerBanner) + `\n`)
	bareHeaderRe      = regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(headerBanner) + `\n`)
	templateIDRe      = regexp.MustCompile(`(id: \w+)-template-v2`)
	versionLineRe     = regexp.MustCompile(`version: \d+\.\d+`)
	nameLineRe        = regexp.MustCompile(`name: [^\n]+`)
)

// Branding names the destination brand. Short is the bare form that replaces
// un-trademarked source variants; Name replaces trademarked ones and is
// written into injected framework fields.
type Branding struct {
	Name  string
	Short string
}

// DefaultBranding returns the RAPID-AI branding.
func DefaultBranding() Branding {
	return Branding{Name: DefaultBrand, Short: DefaultShortBrand}
}

// Step is a single text substitution in the rewrite sequence.
type Step struct {
	// Name identifies the step in logs and tests.
	Name string
	// Apply returns the rewritten text. It never fails.
	Apply func(string) string
}

// Rewriter applies its Steps in order.
type Rewriter struct {
	branding Branding
	steps    []Step
}

// New returns a Rewriter for b. Empty fields of b fall back to the defaults.
func New(b Branding) *Rewriter {
	if b.Name == "" {
		b.Name = DefaultBrand
	}
	if b.Short == "" {
		b.Short = DefaultShortBrand
	}
	return &Rewriter{branding: b, steps: Steps(b)}
}

// Branding returns the destination branding in effect.
func (r *Rewriter) Branding() Branding {
	return r.branding
}

// Steps returns the rewriter's steps in execution order.
func (r *Rewriter) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Transform applies every step to content. The filename is accepted so that
// callers can pass it through, but no step depends on it.
func (r *Rewriter) Transform(content, filename string) string {
	for _, s := range r.steps {
		content = s.Apply(content)
	}
	return content
}

// Steps builds the ordered step list for b.
func Steps(b Branding) []Step {
	return []Step{
		{Name: "strip-header", Apply: StripHeader},
		{Name: "normalize-id", Apply: NormalizeTemplateID},
		{Name: "inject-framework", Apply: func(s string) string { return InjectFramework(s, b.Name) }},
		{Name: "bump-version", Apply: BumpVersion},
		{Name: "backfill-version", Apply: func(s string) string { return BackfillVersion(s, b.Name) }},
		{Name: "rewrite-paths", Apply: RewritePaths},
		{Name: "rewrite-brand", Apply: func(s string) string { return RewriteBrand(s, b) }},
		{Name: "rewrite-commands", Apply: RewriteCommands},
		{Name: "rewrite-footer", Apply: func(s string) string { return RewriteFooter(s, b) }},
	}
}

// Categories is the human-readable list of transformation kinds, in the
// order they are printed in the run summary.
func Categories(b Branding) []string {
	return []string{
		"Removed BMAD™ branding headers",
		"Updated template IDs (removed -v2 suffix)",
		"Added framework: " + b.Name + " field",
		"Updated version to 3.0",
		"Updated file paths (" + oldRoot + " → " + newRoot + ")",
		"Updated branding (BMAD → " + b.Name + ")",
		"Updated slash commands (/bmad → " + newCommand + ")",
	}
}

// StripHeader removes whole banner lines, commented form first.
func StripHeader(s string) string {
	s = commentedHeaderRe.ReplaceAllString(s, "")
	return bareHeaderRe.ReplaceAllString(s, "")
}

// NormalizeTemplateID drops the -v2 suffix from "id: <word>-template-v2".
func NormalizeTemplateID(s string) string {
	return templateIDRe.ReplaceAllString(s, "${1}-template")
}

// InjectFramework adds a framework field after the first version field,
// unless the text already mentions framework: anywhere.
func InjectFramework(s, brand string) string {
	if strings.Contains(s, "framework:") {
		return s
	}
	return insertAfterFirst(s, versionLineRe, "\n  framework: "+brand)
}

// BumpVersion rewrites every "version: 2.0" to "version: 3.0".
func BumpVersion(s string) string {
	return strings.ReplaceAll(s, "version: 2.0", "version: 3.0")
}

// BackfillVersion adds version and framework fields after the first name
// field when a template block carries no version at all.
func BackfillVersion(s, brand string) string {
	if strings.Contains(s, "version:") || !strings.Contains(s, "template:") {
		return s
	}
	return insertAfterFirst(s, nameLineRe, "\n  version: 3.0\n  framework: "+brand)
}

// RewritePaths moves path references from the BMAD core tree to src/rapid.
// The rooted form goes first since the bare form is its suffix.
func RewritePaths(s string) string {
	s = strings.ReplaceAll(s, oldRoot, newRoot)
	return strings.ReplaceAll(s, oldRootBare, newRoot)
}

// RewriteBrand replaces the source brand variants, longest first.
func RewriteBrand(s string, b Branding) string {
	s = strings.ReplaceAll(s, "BMAD™", b.Name)
	s = strings.ReplaceAll(s, "BMad", b.Short)
	return strings.ReplaceAll(s, "BMAD", b.Short)
}

// RewriteCommands replaces slash-command prefixes, the more specific first.
func RewriteCommands(s string) string {
	s = strings.ReplaceAll(s, "/bmad-master", newCommand)
	return strings.ReplaceAll(s, "/bmad", newCommand)
}

// RewriteFooter folds the trademarked variants left behind by RewriteBrand
// (for example "BMAD-METHOD™" becomes "RAPID-METHOD™") into the full name.
func RewriteFooter(s string, b Branding) string {
	s = strings.ReplaceAll(s, b.Short+"-METHOD™", b.Name)
	return strings.ReplaceAll(s, b.Short+"™", b.Name)
}

// insertAfterFirst inserts text right after the first match of re.
func insertAfterFirst(s string, re *regexp.Regexp, text string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[1]] + text + s[loc[1]:]
}
