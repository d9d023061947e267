package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconQuiz     = "\U000F0A3E" // nf-md-lightbulb_on
	IconHomework = "\U000F0219" // nf-md-file_document
	IconTodo     = "\uf0ae"     // nf-fa-tasks
	IconLunch    = "\U000F0A70" // nf-md-silverware
	IconClock    = "\uf017"     // nf-fa-clock_o
	IconDeadline = "\U000F0150" // nf-md-clock_alert
	IconCourse   = "\U000F00BA" // nf-md-book_open
	IconCheck    = "\uf046"     // nf-fa-check_square_o
	IconBox      = "\uf096"     // nf-fa-square_o
	IconCross    = "\uf00d"     // nf-fa-times
)
