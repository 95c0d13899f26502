// Package cli is the interactive terminal front end of the journal.
//
// App binds a repomanager.RepositoryManager and a stats.Engine to a line
// oriented REPL. Each command reads its arguments from the command line and
// prompts for anything else it needs, so the whole journal can be driven
// from a plain terminal or from a script piped into stdin.
//
// Command handlers log their own failures through logging.Logger and print
// a short message for the user; the loop itself never stops on an error.
package cli
