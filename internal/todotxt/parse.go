package todotxt

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseTask parses one todo.txt line into a Task.
//
// Grammar, in order: optional "x" completion marker, optional "(A)"
// priority, then dates — completion then creation for completed tasks, a
// single creation date otherwise. The remaining tokens form the subject,
// except key:value tokens: "due:" and "t:" become date fields, "rec:"
// becomes the structured recurrence descriptor, and everything else goes
// to the ordered tag list.
func ParseTask(line string) (Task, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Task{}, ErrEmptyLine
	}

	task := Task{Priority: NoPriority}

	idx := 0
	if tokens[idx] == "x" {
		task.Completed = true
		idx++
	}

	if idx < len(tokens) {
		if prio, ok := parsePriorityToken(tokens[idx]); ok {
			task.Priority = prio
			idx++
		}
	}

	dates, err := consumeDates(tokens, &idx, task.Completed)
	if err != nil {
		return Task{}, err
	}

	if task.Completed {
		task.FinishDate = dates[0]
		task.CreateDate = dates[1]
	} else {
		task.CreateDate = dates[0]
	}

	var words []string

	for ; idx < len(tokens); idx++ {
		key, value, ok := splitTag(tokens[idx])
		if !ok {
			words = append(words, tokens[idx])
			continue
		}

		switch key {
		case "due":
			task.DueDate, err = ParseDate(value)
		case "t":
			task.ThresholdDate, err = ParseDate(value)
		case "rec":
			var rec Recurrence

			rec, err = ParseRecurrence(value)
			if err == nil {
				task.Recurrence = &rec
			}
		default:
			task.Tags = append(task.Tags, Tag{Key: key, Value: value})
		}

		if err != nil {
			return Task{}, err
		}
	}

	task.Subject = strings.Join(words, " ")

	return task, nil
}

// consumeDates reads the leading date tokens: up to two for completed
// tasks (completion, then creation), at most one otherwise.
func consumeDates(tokens []string, idx *int, completed bool) ([2]Date, error) {
	var dates [2]Date

	limit := 1
	if completed {
		limit = 2
	}

	for slot := range limit {
		if *idx >= len(tokens) || !dateShaped(tokens[*idx]) {
			break
		}

		date, err := ParseDate(tokens[*idx])
		if err != nil {
			return dates, err
		}

		dates[slot] = date
		*idx++
	}

	return dates, nil
}

func parsePriorityToken(tok string) (Priority, bool) {
	if len(tok) == 3 && tok[0] == '(' && tok[2] == ')' && tok[1] >= 'A' && tok[1] <= 'Z' {
		return Priority(tok[1] - 'A'), true
	}

	return NoPriority, false
}

// dateShaped reports whether a token looks like YYYY-MM-DD. Shape-matching
// tokens that fail actual date parsing are rejected rather than silently
// demoted to subject text.
func dateShaped(tok string) bool {
	if len(tok) != 10 || tok[4] != '-' || tok[7] != '-' {
		return false
	}

	for i, c := range tok {
		if i == 4 || i == 7 {
			continue
		}

		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// splitTag splits a key:value token. Both halves must be non-empty and
// the key must not itself contain a colon.
func splitTag(tok string) (string, string, bool) {
	key, value, found := strings.Cut(tok, ":")
	if !found || key == "" || value == "" {
		return "", "", false
	}

	return key, value, true
}

// ReadFile parses one task per line from the file at path. Blank lines
// are skipped; any malformed line is a fatal error carrying the path and
// line number.
func ReadFile(path string) ([]Task, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	var tasks []Task

	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		task, parseErr := ParseTask(line)
		if parseErr != nil {
			return nil, fmt.Errorf("%s:%d: cannot parse task %q: %w", path, lineNo, line, parseErr)
		}

		tasks = append(tasks, task)
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, scanErr)
	}

	return tasks, nil
}
