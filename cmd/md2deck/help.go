package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2deck [command] [flags] [input.md]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build        Render diagrams, then HTML and PDF with Marp (default)")
	fmt.Fprintln(w, "  preprocess   Render diagrams and write <name>.marp.md only")
	fmt.Fprintln(w, "  doctor       Check Python, Graphviz, Marp, Kroki and Chrome")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2deck help <command>' for details on a specific command.")
}

// printInputHelp prints the input resolution rules shared by build commands.
func printInputHelp(w io.Writer) {
	fmt.Fprintln(w, "Input (first match wins):")
	fmt.Fprintln(w, "  MD2DECK_INPUT or npm_config_md, --md, first argument,")
	fmt.Fprintln(w, "  config input.default, src/sample.md, sample.md")
	fmt.Fprintln(w)
}

// printRendererHelp prints flags shared by build and preprocess.
func printRendererHelp(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "      --md <path>           Input markdown file")
	fmt.Fprintln(w, "  -o, --out-dir <dir>       Output directory (default: dist)")
	fmt.Fprintln(w, "      --assets-dir <dir>    Image directory (default: <out-dir>/assets)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagrams:")
	fmt.Fprintln(w, "      --kroki-url <url>     Kroki server for mermaid (env: KROKI_URL)")
	fmt.Fprintln(w, "      --python <path>       Interpreter with diagrams installed (env: PYTHON)")
	fmt.Fprintln(w, "      --runner <path>       Custom diagrams runner script")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom scripts/ and templates/ directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent renders (0 = auto, max 8)")
	fmt.Fprintln(w, "      --footer <s>          Footer for generated frontmatter")
	fmt.Fprintln(w, "                            \"auto\" or \"auto:FORMAT\" inserts the build date")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
}

// printOutputControlHelp prints the verbosity flags.
func printOutputControlHelp(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2deck build [input.md] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render diagram fences to images, write <name>.marp.md and current.marp.md,")
	fmt.Fprintln(w, "then render current.html and current.pdf with Marp CLI.")
	fmt.Fprintln(w)
	printInputHelp(w)
	printRendererHelp(w)
	fmt.Fprintln(w, "Deck:")
	fmt.Fprintln(w, "      --html-only           Render HTML only")
	fmt.Fprintln(w, "      --pdf-only            Render PDF only")
	fmt.Fprintln(w, "      --marp <cmd>          Marp CLI command (env: MARP_CLI)")
	fmt.Fprintln(w, "      --pdf-engine <s>      PDF engine: marp, chrome")
	fmt.Fprintln(w, "      --theme <name>        Marp theme")
	fmt.Fprintln(w, "      --theme-set <path>    Theme CSS file or directory")
	fmt.Fprintln(w, "      --allow-html          Allow raw HTML in slides")
	fmt.Fprintln(w, "  -t, --timeout <d>         Marp timeout per output (e.g., 90s, 5m)")
	fmt.Fprintln(w)
	printOutputControlHelp(w)
}

// printPreprocessUsage prints usage for the preprocess command.
func printPreprocessUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2deck preprocess [input.md] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render diagram fences to images and write <name>.marp.md and")
	fmt.Fprintln(w, "current.marp.md. Marp is not run.")
	fmt.Fprintln(w)
	printInputHelp(w)
	printRendererHelp(w)
	printOutputControlHelp(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2deck doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the tools a build needs: Python with diagrams, Graphviz,")
	fmt.Fprintln(w, "Marp CLI, the Kroki server and, for --pdf-engine chrome, Chrome.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "preprocess":
		printPreprocessUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2deck version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2deck help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
