package command

import (
	"strconv"
	"strings"

	"github.com/nibzard/kiki-go/internal/dates"
	"github.com/nibzard/kiki-go/internal/kikierr"
)

// Parse turns one input line into a Command. Only syntax is checked here;
// index ranges are validated when the command executes.
func Parse(input string) (Command, error) {
	s := strings.TrimSpace(input)
	keyword, rest := splitKeyword(s)

	switch keyword {
	case "bye":
		if rest == "" {
			return Exit{}, nil
		}
	case "list":
		if rest == "" {
			return List{}, nil
		}
	case "mark":
		idx, err := parseIndex(rest, keyword)
		if err != nil {
			return nil, err
		}
		return Mark{Index: idx}, nil
	case "unmark":
		idx, err := parseIndex(rest, keyword)
		if err != nil {
			return nil, err
		}
		return Unmark{Index: idx}, nil
	case "delete":
		idx, err := parseIndex(rest, keyword)
		if err != nil {
			return nil, err
		}
		return Delete{Index: idx}, nil
	case "todo":
		return parseTodo(rest)
	case "deadline":
		return parseDeadline(rest)
	case "event":
		return parseEvent(rest)
	case "on":
		return parseOn(rest)
	case "find":
		return parseFind(rest)
	}

	return nil, kikierr.New(kikierr.KindParse, kikierr.CodeUnknownCommand,
		"I'm sorry, but I don't know what that means :-(")
}

// splitKeyword returns the first whitespace-delimited word and the
// trimmed remainder.
func splitKeyword(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

// parseIndex converts a 1-based task number into a 0-based index.
func parseIndex(rest, keyword string) (int, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, kikierr.New(kikierr.KindParse, kikierr.CodeMissingArgument,
			"Please provide a task number for '%s'.", keyword)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, kikierr.New(kikierr.KindParse, kikierr.CodeNotANumber,
			"'%s' is not a valid task number.", fields[0])
	}
	return n - 1, nil
}

func parseTodo(rest string) (Command, error) {
	if rest == "" {
		return nil, emptyField("The description of a todo cannot be empty.")
	}
	return AddTodo{Description: rest}, nil
}

func parseDeadline(rest string) (Command, error) {
	desc, by, found := strings.Cut(rest, "/by")
	if !found {
		return nil, kikierr.New(kikierr.KindParse, kikierr.CodeMissingMarker,
			"Deadline requires '/by <date>'. Example: deadline return book /by 2025-09-30")
	}
	desc = strings.TrimSpace(desc)
	by = strings.TrimSpace(by)
	if desc == "" {
		return nil, emptyField("The description of a deadline cannot be empty.")
	}
	if by == "" {
		return nil, emptyField("The date of a deadline cannot be empty. Use '/by <date>'.")
	}
	return AddDeadline{Description: desc, By: by}, nil
}

func parseEvent(rest string) (Command, error) {
	desc, span, found := strings.Cut(rest, "/from")
	if !found {
		return nil, kikierr.New(kikierr.KindParse, kikierr.CodeMissingMarker,
			"Event requires '/from <start>' and '/to <end>'.")
	}
	from, to, found := strings.Cut(span, "/to")
	if !found {
		return nil, kikierr.New(kikierr.KindParse, kikierr.CodeMissingMarker,
			"Event requires '/to <end>'.")
	}
	desc = strings.TrimSpace(desc)
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if desc == "" {
		return nil, emptyField("The description of an event cannot be empty.")
	}
	if from == "" {
		return nil, emptyField("The start date of an event cannot be empty. Use '/from <start>'.")
	}
	if to == "" {
		return nil, emptyField("The end date of an event cannot be empty. Use '/to <end>'.")
	}
	return AddEvent{Description: desc, From: from, To: to}, nil
}

func parseOn(rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, kikierr.New(kikierr.KindParse, kikierr.CodeMissingArgument,
			"Please provide a date. Usage: on yyyy-mm-dd")
	}
	day, err := dates.Parse(fields[0])
	if err != nil {
		return nil, kikierr.New(kikierr.KindValidation, kikierr.CodeInvalidDate,
			"Invalid date. Please use yyyy-mm-dd.")
	}
	return OnDate{Date: day}, nil
}

func parseFind(rest string) (Command, error) {
	if rest == "" {
		return nil, kikierr.New(kikierr.KindParse, kikierr.CodeMissingArgument,
			"Please provide a keyword. Usage: find <keyword>")
	}
	return Find{Keyword: rest}, nil
}

func emptyField(msg string) error {
	return kikierr.New(kikierr.KindValidation, kikierr.CodeEmptyField, "%s", msg)
}
