package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"devconsole/internal/commands"
	"devconsole/internal/output"
	"devconsole/internal/version"
	"devconsole/pkg/consoletypes"
)

// GroupConsole is the group of the commands every console provides.
const GroupConsole = "Console"

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

func builtinDecl(name, description string) commands.Declaration {
	return commands.Declaration{
		Name:        name,
		Description: description,
		Group:       GroupConsole,
		Target:      consoletypes.TargetSingle,
		Static:      true,
	}
}

// registerBuiltins adds the console commands. A command already registered under
// the same key is kept and the conflict is logged.
func (c *Console) registerBuiltins() error {
	builtins := []struct {
		decl   commands.Declaration
		params []commands.Argument
		fn     commands.Func
	}{
		{builtinDecl("list-commands", "List all commands by group"), nil, c.listCommands},
		{builtinDecl("help", "Show how to use the console"), nil, c.help},
		{builtinDecl("help", "Show the usage of a command"), []commands.Argument{commands.Param[string]("command")}, c.helpCommand},
		{builtinDecl("history", "Show the input history"), nil, c.showHistory},
		{builtinDecl("clear-history", "Clear the input history"), nil, c.clearHistory},
		{builtinDecl("clear", "Clear the console screen"), nil, c.clear},
		{builtinDecl("version", "Show the console version"), nil, showVersion},
	}

	for _, b := range builtins {
		cmd, err := commands.NewAction(b.decl, b.params, b.fn)
		if err != nil {
			return fmt.Errorf("invalid console command %s: %w", b.decl.Name, err)
		}
		if err := c.commands.Register(cmd); err != nil {
			var dup *consoletypes.DuplicateRegistrationError
			if errors.As(err, &dup) {
				log.Debug("Console command already registered", "key", dup.Key)
				continue
			}
			return err
		}
	}
	return nil
}

func (c *Console) listCommands(_ any, _ []any) (any, error) {
	grouped := c.commands.Grouped()
	for _, group := range c.commands.Groups() {
		cmds := grouped[group]

		width := 0
		for _, cmd := range cmds {
			width = max(width, runewidth.StringWidth(cmd.Signature()))
		}

		c.printer.Heading("Group: " + group)
		for _, cmd := range cmds {
			signature := runewidth.FillRight(cmd.Signature(), width)
			c.printer.Println("  " + c.printer.Styled(output.SemanticCommand, signature) +
				"  " + c.printer.Styled(output.SemanticMuted, cmd.Description()))
		}
	}
	return nil, nil
}

func (c *Console) help(_ any, _ []any) (any, error) {
	var sb strings.Builder
	sb.WriteString("# Console\n\n")
	sb.WriteString("Type a command name followed by its arguments, separated by spaces. ")
	sb.WriteString("Wrap arguments containing spaces in double quotes. ")
	sb.WriteString("Tuples such as positions are written without spaces: `1,2,3`.\n\n")
	sb.WriteString("Use `list-commands` to see every command and `help <command>` for details.\n")

	c.printer.Markdown(sb.String())
	return nil, nil
}

func (c *Console) helpCommand(_ any, args []any) (any, error) {
	name := args[0].(string)
	overloads := c.commands.FindByName(name)
	if len(overloads) == 0 {
		return nil, fmt.Errorf("unknown command %q", name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", name)
	for _, cmd := range overloads {
		fmt.Fprintf(&sb, "`%s`\n\n", cmd.Signature())
		if cmd.Description() != "" {
			sb.WriteString(cmd.Description() + "\n\n")
		}
		if cmd.Arity() == 0 {
			continue
		}
		sb.WriteString("| Argument | Type | Default |\n|---|---|---|\n")
		for _, arg := range cmd.Arguments() {
			def := ""
			if arg.HasDefault {
				def = fmt.Sprint(arg.Default)
				if text, ok := c.converters.ToString(arg.Default); ok {
					def = text
				}
			}
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", arg.Name, typeLabel(arg), def)
		}
		sb.WriteString("\n")
	}

	c.printer.Markdown(sb.String())
	return nil, nil
}

// typeLabel is the short type name shown in help tables.
func typeLabel(arg commands.Argument) string {
	if name := arg.Type.Name(); name != "" {
		return name
	}
	return arg.Type.String()
}

func (c *Console) showHistory(_ any, _ []any) (any, error) {
	entries := c.history.Entries()
	if len(entries) == 0 {
		c.printer.Info("History is empty")
		return nil, nil
	}

	width := len(fmt.Sprint(len(entries)))
	for i, entry := range entries {
		c.printer.Println(fmt.Sprintf("  %*d  %s", width, i+1, entry))
	}
	return nil, nil
}

func (c *Console) clearHistory(_ any, _ []any) (any, error) {
	c.history.Clear()
	c.printer.Success("History cleared")
	return nil, nil
}

func (c *Console) clear(_ any, _ []any) (any, error) {
	if c.printer.IsStylable() {
		c.printer.Print(clearScreen)
	}
	return nil, nil
}

func showVersion(_ any, _ []any) (any, error) {
	return version.Parse()
}
