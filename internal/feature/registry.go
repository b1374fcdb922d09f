package feature

// Flag is named such that checking for a feature uses `feature.Flag.Enabled(feature.LegacyExitStatus)`.
var Flag = New()

// flag names are written in kebab-case
const (
	LegacyExitStatus FlagName = "legacy-exit-status"
	NumericDriveType FlagName = "numeric-drive-type"
)

func init() {
	Flag.SetFlags(map[FlagName]FlagDesc{
		LegacyExitStatus: {Type: Alpha, Description: "always exit with status 0 when triggering the backup fails, only the printed messages report the failure."},
		NumericDriveType: {Type: Beta, Description: "read FH_TARGET_DRIVE_TYPE as a numerical target property when it is not available as a string."},
	})
}
