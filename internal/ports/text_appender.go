package ports

// TextAppender appends text to the receiver's output file.
// Each call must leave the text durable on the file system and must not
// truncate previously appended text.
type TextAppender interface {
	Append(text string) error
}
