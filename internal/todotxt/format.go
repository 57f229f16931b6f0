package todotxt

import "strings"

// String serializes the task back into todo.txt line form. Serialization
// is the inverse of ParseTask for well-formed lines: marker, priority,
// dates, subject, tags, then t:, due: and rec: descriptors.
func (t Task) String() string {
	var parts []string

	if t.Completed {
		parts = append(parts, "x")
	}

	if letter, ok := t.Priority.Letter(); ok {
		parts = append(parts, "("+string(letter)+")")
	}

	if t.Completed && !t.FinishDate.IsZero() {
		parts = append(parts, t.FinishDate.String())
	}

	if !t.CreateDate.IsZero() {
		parts = append(parts, t.CreateDate.String())
	}

	if t.Subject != "" {
		parts = append(parts, t.Subject)
	}

	for _, tag := range t.Tags {
		parts = append(parts, tag.Key+":"+tag.Value)
	}

	if !t.ThresholdDate.IsZero() {
		parts = append(parts, "t:"+t.ThresholdDate.String())
	}

	if !t.DueDate.IsZero() {
		parts = append(parts, "due:"+t.DueDate.String())
	}

	if t.Recurrence != nil {
		parts = append(parts, "rec:"+t.Recurrence.String())
	}

	return strings.Join(parts, " ")
}
