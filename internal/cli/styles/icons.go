package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconHeart     = "" // heart
	IconGo        = "" // go gopher
	IconArrow     = "" // arrow right
	IconLinux     = "" // tux

	IconCheck   = ""
	IconX       = ""
	IconWarning = ""
	IconInfo    = ""

	IconConfig   = ""
	IconDatabase = ""
	IconFolder   = ""
	IconLogs     = ""
	IconFile     = ""

	IconNetwork = "" // network wired
	IconCursor  = "" // chevron-right
	IconClock   = ""
)
