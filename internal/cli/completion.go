package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values; nil for booleans and free-form values
	ValueName string   // label for the value in zsh
	IsFile    bool     // true if the flag takes a file path
}

// takesValue reports whether the flag expects an argument.
func (f FlagCompletion) takesValue() bool {
	return f.IsFile || len(f.Values) > 0 || f.ValueName != ""
}

// forms returns the flag's spellings as typed on the command line.
func (f FlagCompletion) forms() []string {
	var out []string
	if f.Long != "" {
		out = append(out, "--"+f.Long)
	}
	if f.Short != "" {
		out = append(out, "-"+f.Short)
	}
	return out
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Print only the value at this index", ValueName: "index"},
	{Long: "count", Help: "Number of rows to load (0 = until overflow)", Values: []string{"10", "20", "50", "0"}, ValueName: "rows"},
	{Long: "tui", Help: "Interactive scrolling list"},
	{Long: "prefetch", Help: "Rows from the end that trigger the next request", Values: []string{"1", "5", "10"}, ValueName: "rows"},
	{Long: "repl", Help: "Interactive command prompt"},
	{Long: "serve", Help: "Serve the sequence over HTTP"},
	{Long: "addr", Help: "HTTP listen address", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "30s", "1m", "5m"}, ValueName: "duration"},
	{Long: "json", Help: "Print results as JSON"},
	{Long: "output", Short: "o", Help: "Also write the list to a file", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Print values only"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out.
//
// Parameters:
//   - out: Receives the script.
//   - shell: One of "bash", "zsh", "fish", "powershell" (or "ps").
//
// Returns:
//   - error: If the shell is unsupported or the write fails.
func GenerateCompletion(out io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	case "powershell", "ps":
		script = powerShellCompletion()
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion() string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, f.forms()...)
		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(f.forms(), "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for fibscroll
# Add this to your ~/.bashrc or ~/.bash_completion

_fibscroll_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibscroll_completions fibscroll
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion() string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef fibscroll

# Zsh completion script for fibscroll
# Add this to your ~/.zshrc or place in $fpath

_fibscroll() {
    _arguments -s \
%s
}

_fibscroll "$@"
`, strings.Join(args, " \\\n"))
}

// zshArgEntry formats a flag as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	suffix := ""
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	switch {
	case f.Long != "" && f.Short != "":
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	case f.Long != "":
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
	default:
		return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, suffix)
	}
}

func fishCompletion() string {
	lines := []string{
		"# Fish completion script for fibscroll",
		"# Add this to ~/.config/fish/completions/fibscroll.fish",
		"",
		"complete -c fibscroll -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats a flag as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c fibscroll"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.takesValue():
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func powerShellCompletion() string {
	var options, switches []string
	for _, f := range flagRegistry {
		for _, form := range f.forms() {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", form, f.Help))
		}
		if f.Long == "" || len(f.Values) == 0 {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = "'" + v + "'"
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for fibscroll
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'fibscroll' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
