// Package notetext кодирует заметки в текстовый формат экспорта и разбирает его при импорте.
//
// Формат: для каждой заметки строки "Title: <title>" и "Description: <description>",
// записи разделены пустой строкой. Следующие строки многострочного описания пишутся
// с отступом в один пробел, поэтому пустые строки и строки вида "Title: ..." внутри
// описания не разрывают запись.
//
//	Title: Groceries
//	Description: milk, eggs
//
//	Title: Plan
//	Description: step one
//	 Title: step two
package notetext

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gonotepad/internal/notes/domain/entities"
)

const (
	TitlePrefix       = "Title:"
	DescriptionPrefix = "Description:"

	// FileName имя файла экспорта по умолчанию.
	FileName = "notes_export.txt"

	continuationIndent = " "
)

// Encode сериализует заметки. Decode(Encode(notes)) возвращает те же пары title/description,
// если заголовки однострочные, а описания не начинаются и не заканчиваются пробелами.
func Encode(notes []entities.Note) string {
	var b strings.Builder
	for i, note := range notes {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeRecord(&b, note.Title, note.Description)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, title, description string) {
	b.WriteString(TitlePrefix)
	b.WriteByte(' ')
	b.WriteString(singleLine(title))
	b.WriteByte('\n')

	b.WriteString(DescriptionPrefix)
	for i, line := range splitLines(description) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(continuationIndent)
		b.WriteString(line)
	}
	b.WriteByte('\n')
}

// Decode разбирает текст экспорта. Неполные записи отбрасываются, посторонние строки игнорируются.
func Decode(text string) []entities.Draft {
	var p parser
	for _, line := range splitLines(text) {
		p.line(line)
	}
	return p.finish()
}

// DecodeReader читает и разбирает текст из r.
func DecodeReader(r io.Reader) ([]entities.Draft, error) {
	var p parser

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	return p.finish(), nil
}

type parser struct {
	drafts  []entities.Draft
	pending entities.Draft
	// inDescription разрешает строки-продолжения многострочного описания.
	inDescription bool
}

func (p *parser) line(raw string) {
	line := strings.TrimRight(raw, "\r")

	switch {
	case p.inDescription && strings.HasPrefix(line, continuationIndent):
		p.pending.Description += "\n" + strings.TrimPrefix(line, continuationIndent)
	case strings.HasPrefix(line, TitlePrefix):
		if p.pending.Complete() {
			p.commit()
		}
		p.pending.Title = strings.TrimSpace(strings.TrimPrefix(line, TitlePrefix))
		p.inDescription = false
	case strings.HasPrefix(line, DescriptionPrefix):
		p.pending.Description = strings.TrimSpace(strings.TrimPrefix(line, DescriptionPrefix))
		p.inDescription = true
	case strings.TrimSpace(line) == "":
		p.commit()
	case p.inDescription:
		// файлы старого формата без отступа
		p.pending.Description += "\n" + strings.TrimRight(line, " \t")
	}
}

func (p *parser) commit() {
	if p.pending.Complete() {
		p.drafts = append(p.drafts, p.pending)
	}
	p.pending = entities.Draft{}
	p.inDescription = false
}

func (p *parser) finish() []entities.Draft {
	p.commit()
	return p.drafts
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

func singleLine(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s))
}
