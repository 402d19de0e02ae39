package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Options (E100-E109)
	// ============================================

	"E100": {
		Category:   CategoryConfig,
		Message:    "App selector is required",
		Detail:     "Every render needs the root element of the application, written as a tag.",
		Suggestion: `Pass AppSelector: "<app-root></app-root>" for your root component`,
	},
	"E101": {
		Category:   CategoryConfig,
		Message:    "Invalid app selector",
		Detail:     "The app selector must be written as an element tag such as <app-root></app-root>; the tag name is read between '<' and the first '>'.",
		Suggestion: `Use the form "<app-root></app-root>"`,
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Module is required",
		Detail:   "A module or a precompiled factory must be supplied to be bootstrapped.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Engine is not configured",
		Detail:   "The engine needs a compiler factory and a platform factory.",
	},

	// ============================================
	// Render Errors (E110-E119)
	// ============================================

	"E111": {
		Category:   CategoryRender,
		Message:    "App root element not found",
		Detail:     "The rendered document contains no element matching the app selector.",
		Suggestion: "Check that the root component's selector matches the app selector",
	},
	"E112": {
		Category:   CategoryTimeout,
		Message:    "Application did not become stable",
		Detail:     "The application still had pending asynchronous work when the stability timeout elapsed.",
		Suggestion: "Look for never-ending timers or polling, or raise stabilityTimeout",
	},
	"E113": {
		Category: CategoryHook,
		Message:  "Before-serialization hook failed",
		Detail:   "The failure was ignored and rendering continued.",
	},
	"E114": {
		Category: CategoryRender,
		Message:  "Platform returned no document",
	},

	// ============================================
	// Configuration Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file is malformed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// Resource Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryCompile,
		Message:  "Resource not found",
		Detail:   "The resource loader could not find the requested file.",
	},
	"E131": {
		Category: CategoryCompile,
		Message:  "Resource path rejected",
		Detail:   "Resource URLs must stay inside the resource root.",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E141": {
		Category:   CategoryCLI,
		Message:    "Configuration file not found",
		Suggestion: "Create universal.json or pass --config",
	},
	"E145": {
		Category:   CategoryCLI,
		Message:    "Unknown project template",
		Suggestion: "Run universal init --list to see available templates",
	},
	"E146": {
		Category:   CategoryCLI,
		Message:    "Project already initialized",
		Detail:     "The directory already contains a universal configuration file.",
		Suggestion: "Use --force to overwrite it",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
