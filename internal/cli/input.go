package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qup1010/moodlistener/internal/models"
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetWithDefault works like GetSimpleText but shows def in the prompt and
// returns it when the answer is empty.
func GetWithDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func parseID(args []string, cmd string) (int64, error) {
	if len(args) != 1 {
		return 0, usage("usage: %s <id>", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, usage("%s: %q is not an id", cmd, args[0])
	}
	return id, nil
}

// parseMoodArg accepts a mood name or its first letter ("p", "u", "n" for
// positive, neutral and negative).
func parseMoodArg(s string) (models.Mood, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "+":
		return models.MoodPositive, nil
	case "u", "0", "=":
		return models.MoodNeutral, nil
	case "n", "-":
		return models.MoodNegative, nil
	}
	return models.ParseMood(strings.ToLower(strings.TrimSpace(s)))
}

// splitList splits a comma separated answer, dropping blank items.
func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

var dayNames = map[string]int{
	"mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6, "sun": 7,
}

// parseDays reads a weekday set: "daily", "weekdays", "weekends" or a
// comma separated list of numbers 1..7 or three-letter day names.
func parseDays(s string) ([]int, error) {
	switch strings.ToLower(s) {
	case "", "daily":
		return models.AllDays(), nil
	case "weekdays":
		return []int{1, 2, 3, 4, 5}, nil
	case "weekends":
		return []int{6, 7}, nil
	}

	var days []int
	seen := map[int]bool{}
	for _, item := range splitList(strings.ToLower(s)) {
		d, ok := dayNames[item]
		if !ok {
			n, err := strconv.Atoi(item)
			if err != nil {
				return nil, usage("unknown day %q", item)
			}
			d = n
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}

func parseOnOff(args []string, cmd string) (bool, error) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "on", "true", "yes":
			return true, nil
		case "off", "false", "no":
			return false, nil
		}
	}
	return false, usage("usage: %s on|off", cmd)
}

// optional treats "-" and "" as an absent positional argument.
func optional(args []string, i int) string {
	if i >= len(args) || args[i] == "-" {
		return ""
	}
	return args[i]
}
