package animassist

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Convert animations between game containers and Havok files"
	MsgExtractShort    = "Extract an importable Havok file from a skeleton and an animation"
	MsgPackShort       = "Pack an edited animation back into an animation container"
	MsgInspectShort    = "Show the decoded headers of skeleton and animation containers"
	MsgInspectLong     = "Inspect decodes the given containers and shows their header fields, payload sizes and embedded animations. Nothing is modified."
	MsgConfigShort     = "Print the effective configuration"
	MsgConfigLong      = "Print the configuration after applying defaults, the user config file, --config and ANIMASSIST_ environment variables, as TOML."
	MsgFormatsShort    = "Describe the container formats"
	MsgFormatsLong     = "Display the reference for the skeleton and animation container layouts and for bone remapping."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice  = "DRY RUN MODE - nothing was written"
	MsgExtractTitle  = "Extract"
	MsgPackTitle     = "Pack"
	MsgInspectTitle  = "Inspect"
	MsgSkeletonTitle = "Skeleton container"
	MsgAnimTitle     = "Animation container"
	MsgAnimsTitle    = "Animations"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrNoCommand  = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v info, -vv debug, -vvv trace)"
	MsgFlagConfig    = "Read configuration from this file as well"
	MsgFlagDryRun    = "Run every step but write nothing"
	MsgFlagFormat    = "Output format: auto, term, text, json or yaml"
	MsgFlagSkeleton  = "Skeleton container (.sklb)"
	MsgFlagAnimation = "Animation container (.pap)"
	MsgFlagModified  = "Edited animation in Havok XML form"
	MsgFlagOutput    = "Output file"
	MsgFlagIndex     = "0-based animation to extract when the container holds several"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/extract-long.txt
	msgExtractLongRaw string
	MsgExtractLong    = strings.TrimSpace(msgExtractLongRaw)

	//go:embed msgs/extract-example.txt
	msgExtractExampleRaw string
	MsgExtractExample    = strings.TrimRight(msgExtractExampleRaw, "\n")

	//go:embed msgs/pack-long.txt
	msgPackLongRaw string
	MsgPackLong    = strings.TrimSpace(msgPackLongRaw)

	//go:embed msgs/pack-example.txt
	msgPackExampleRaw string
	MsgPackExample    = strings.TrimRight(msgPackExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed topics/formats.md
	formatsReference string
)
