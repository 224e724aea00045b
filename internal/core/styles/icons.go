package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconFolderOpen   = "" //
	IconFolderClosed = "" //
	IconLeaf         = "•"
	IconFileJSON     = " " //
	IconDirty        = "●"
	IconChecked      = "[x]"
	IconUnchecked    = "[ ]"

	IconNotifyInfo    = "ℹ"
	IconNotifySuccess = "✔"
	IconNotifyWarning = "⚠"
	IconNotifyError   = "✖"
)
