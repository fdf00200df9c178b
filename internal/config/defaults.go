package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# Astroname Configuration
# Place in .astroname/config.yml (project) or ~/.config/astroname/config.yml (user)

# Input files
definition_file: definition.json      # Questionnaire definition (.json | .yaml | .toml)
answers_file: answers.json            # Answers of the previous run (rewritten after each run)

# Name assembly
separator: "_"                        # Joins fragments (empty = "_")
space_replacement: "-"                # Replaces spaces inside a fragment (empty = "-")

# State
state_dir: ~/.astroname/state         # Directory for the result history

# History settings
history:
  enabled: false                      # Record every produced name (opt-in)
  max_entries: 100                    # Oldest names are pruned beyond this (0 = unlimited)

# Output
log_level: warn                       # debug | info | warn | error
no_color: false                       # Disable colors (NO_COLOR is honored too)
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// definition_file and answers_file: fixed names in the working directory
		// unless configured otherwise.
		"definition_file":   "definition.json",
		"answers_file":      "answers.json",
		"separator":         "_",
		"space_replacement": "-",
		"state_dir":         "~/.astroname/state",
		// log_level: diagnostics go to stderr; warn keeps interactive sessions quiet
		// apart from data-integrity warnings.
		"log_level": "warn",
		"no_color":  false,
		// history: opt-in log of produced names under state_dir; a bare run
		// writes nothing besides the answers file.
		// Environment variable support via ASTRONAME_HISTORY_* prefix.
		"history": map[string]interface{}{
			"enabled":     false,
			"max_entries": 100,
		},
	}
}
