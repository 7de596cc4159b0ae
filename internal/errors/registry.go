package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryUsage,
		Message:  "Invalid render root",
		Detail:   "The render target must be a live element or document fragment node.",
	},
	"E201": {
		Category: CategoryReentrancy,
		Message:  "Node is currently being rendered to and thus is locked",
		Detail:   "A render pass was requested for a root that contains, or is contained by, a root that is mid-render. Disjoint roots may be rendered from hooks.",
	},
	"E202": {
		Category: CategoryUsage,
		Message:  "Child node of a contenteditable must be trusted",
		Detail:   "A contenteditable element may only hold a single trusted HTML child.",
	},
	"E203": {
		Category: CategoryUsage,
		Message:  "A view cannot return the vnode it received as argument",
		Detail:   "Returning the component vnode from its own view would recurse forever.",
	},
	"E204": {
		Category: CategoryUsage,
		Message:  "vnode.State must not be modified",
		Detail:   "Lifecycle hooks receive the vnode but must not replace its component state.",
	},
	"E205": {
		Category: CategoryUsage,
		Message:  "Static attrs are immutable",
		Detail:   "Attrs created with Static() are shared across renders and cannot be changed.",
	},
	"E206": {
		Category: CategoryUsage,
		Message:  "Value cannot be rendered",
		Detail:   "Children must be vnodes, strings, numbers, booleans, nil, or slices of those.",
	},
	"E210": {
		Category: CategoryUser,
		Message:  "Lifecycle hook failed",
		Detail:   "A lifecycle hook panicked. The node it belongs to was skipped for this pass.",
	},
	"E211": {
		Category: CategoryUser,
		Message:  "Component failed",
		Detail:   "A component constructor or view panicked. The component is marked failed and will not be retried.",
	},

	// ============================================
	// Warnings (W001-W019)
	// ============================================

	"W001": {
		Category: CategoryWarning,
		Message:  "Don't reuse attrs object, use new object for every redraw",
		Detail:   "Reusing a mutable attrs object hides changes from the differ. Use Static() for attrs that never change.",
	},
	"W002": {
		Category: CategoryWarning,
		Message:  "`value` is read-only on file inputs",
		Detail:   "Only the empty string can be assigned to a file input's value.",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No vdomctl.yaml was found; defaults are used.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid tree file",
		Detail:   "The tree file does not describe a valid vnode tree.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Fuzz check failed",
		Detail:   "A randomized keyed diff produced a wrong order or more moves than necessary.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
