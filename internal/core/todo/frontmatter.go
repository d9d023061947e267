package todo

import (
	"bufio"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of a Markdown item file:
//
//	---
//	title: Problem set 3
//	category: hw
//	deadline: 2025-11-14
//	---
//	- [ ] question 1
//	- [x] question 2
type Frontmatter struct {
	Title          string `yaml:"title"`
	Category       string `yaml:"category"`
	Course         string `yaml:"course"`
	Time           string `yaml:"time"`
	AllDay         bool   `yaml:"all_day"`
	Duration       int    `yaml:"duration"`
	Deadline       string `yaml:"deadline"`
	DeadlineAllDay bool   `yaml:"deadline_all_day"`
}

// ParseFrontmatter splits content into its front matter and body. The front
// matter must open with "---" on the first line and close with another "---".
// Content without front matter is returned whole as the body.
func ParseFrontmatter(content string) (Frontmatter, string, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return Frontmatter{}, content, nil
	}

	var (
		header []string
		body   []string
		closed bool
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case closed:
			body = append(body, line)
		case strings.TrimSpace(line) == "---":
			closed = true
		default:
			header = append(header, line)
		}
	}
	if !closed {
		return Frontmatter{}, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(strings.Join(header, "\n")), &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parse front matter: %w", err)
	}
	return fm, strings.Join(body, "\n"), nil
}

// ParseMarkdown builds an item from a Markdown file. The title falls back to
// the first "# " heading, and "- [ ]" / "- [x]" lines become subtasks.
func ParseMarkdown(content string) (Item, error) {
	fm, body, err := ParseFrontmatter(content)
	if err != nil {
		return Item{}, err
	}

	it := Item{
		Title:          fm.Title,
		Category:       ParseCategory(fm.Category),
		CourseID:       fm.Course,
		Time:           fm.Time,
		AllDay:         fm.AllDay,
		Duration:       fm.Duration,
		Deadline:       fm.Deadline,
		DeadlineAllDay: fm.DeadlineAllDay,
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case it.Title == "" && strings.HasPrefix(line, "# "):
			it.Title = strings.TrimPrefix(line, "# ")
		case strings.HasPrefix(line, "- [ ] "):
			it.Subtasks = append(it.Subtasks, Subtask{Text: line[len("- [ ] "):]})
		case strings.HasPrefix(line, "- [x] "), strings.HasPrefix(line, "- [X] "):
			it.Subtasks = append(it.Subtasks, Subtask{Text: line[len("- [x] "):], Completed: true})
		}
	}
	return it, nil
}
