package tools

import (
	"flag"

	"github.com/golang/glog"
)

const (
	CommandIndex  = "index"
	CommandPlace  = "place"
	CommandBatch  = "batch"
	CommandVerify = "verify"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type InputFlags struct {
	Input                     *string  `json:"input"`
	FolderProcessing          *bool    `json:"folder"`
	RecursiveFolderProcessing *bool    `json:"recursive"`
	ZOffset                   *float64 `json:"z_offset"`
}

type PlacementFlags struct {
	Strategy          *string  `json:"strategy"`
	Gravity           *string  `json:"gravity"`
	TargetLabelCount  *int     `json:"target_count"`
	MaximumDepth      *int     `json:"max_depth"`
	TileSize          *float64 `json:"tile_size"`
	LabelFraction     *float64 `json:"label_fraction"`
	EnforceBudget     *bool    `json:"enforce_budget"`
	PlaceAll          *bool    `json:"place_all"`
	Normals           *bool    `json:"normals"`
	OutputCoordinates *string  `json:"output_coords"`
	Margin            *float64 `json:"margin"`
	NoReplay          *bool    `json:"no_replay"`
}

type LogFlags struct {
	Silent       *bool
	LogTimestamp *bool
	Help         *bool
	Version      *bool
}

type FlagsForCommandIndex struct {
	InputFlags
	PlacementFlags
	LogFlags
}

type FlagsForCommandPlace struct {
	InputFlags
	PlacementFlags
	LogFlags
	Output    *string
	Precision *int
}

type FlagsForCommandVerify struct {
	InputFlags
	PlacementFlags
	LogFlags
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	// -v belongs to glog on the global flag set
	version := defineBoolFlag("version", "", false, "Displays the version of label_placer.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandIndex(args []string) FlagsForCommandIndex {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-index", flag.ExitOnError)
	flags := FlagsForCommandIndex{
		InputFlags:     defineInputFlags(flagCommand),
		PlacementFlags: definePlacementFlags(flagCommand),
		LogFlags:       defineLogFlags(flagCommand),
	}
	flagCommand.Parse(args)

	return flags
}

// place and batch share their flags
func ParseFlagsForCommandPlace(command string, args []string) FlagsForCommandPlace {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-"+command, flag.ExitOnError)
	flags := FlagsForCommandPlace{
		InputFlags:     defineInputFlags(flagCommand),
		PlacementFlags: definePlacementFlags(flagCommand),
		LogFlags:       defineLogFlags(flagCommand),
		Output:         defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output folder where to write the placement reports."),
		Precision:      defineIntFlagCommand(flagCommand, "precision", "p", 6, "Number of decimals kept for the coordinates written to the reports."),
	}
	flagCommand.Parse(args)

	return flags
}

func ParseFlagsForCommandVerify(args []string) FlagsForCommandVerify {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-verify", flag.ExitOnError)
	flags := FlagsForCommandVerify{
		InputFlags:     defineInputFlags(flagCommand),
		PlacementFlags: definePlacementFlags(flagCommand),
		LogFlags:       defineLogFlags(flagCommand),
	}
	flagCommand.Parse(args)

	return flags
}

func defineInputFlags(flagCommand *flag.FlagSet) InputFlags {
	return InputFlags{
		Input:                     defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input scene file/folder."),
		FolderProcessing:          defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all scene files from input folder. Input must be a folder if specified"),
		RecursiveFolderProcessing: defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all .toml files inside the subfolders"),
		ZOffset:                   defineFloat64FlagCommand(flagCommand, "zoffset", "z", 0, "Vertical offset to apply to anchors, in scene units."),
	}
}

func definePlacementFlags(flagCommand *flag.FlagSet) PlacementFlags {
	return PlacementFlags{
		Strategy:          defineStringFlagCommand(flagCommand, "strategy", "", "full-sort", "Traversal of the label hierarchy, one of 'full-sort', 'queue', 'depth-first', 'frustum'."),
		Gravity:           defineStringFlagCommand(flagCommand, "gravity", "g", "center-baseline", "Label position relative to its anchor, '<left|center|right>-<bottom|baseline|center|top>'."),
		TargetLabelCount:  defineIntFlagCommand(flagCommand, "target-count", "c", 16, "Number of labels a hierarchy node keeps before pushing anchors to its children."),
		MaximumDepth:      defineIntFlagCommand(flagCommand, "max-depth", "d", 5, "Maximum depth of the label hierarchy."),
		TileSize:          defineFloat64FlagCommand(flagCommand, "tile-size", "", 64, "Size in pixels of the square screen tiles used for overlap tests."),
		LabelFraction:     defineFloat64FlagCommand(flagCommand, "label-fraction", "", 0.05, "Fraction of the viewport area labels are allowed to cover."),
		EnforceBudget:     defineBoolFlagCommand(flagCommand, "enforce-budget", "", false, "Stops placing labels once label-fraction is exceeded."),
		PlaceAll:          defineBoolFlagCommand(flagCommand, "place-all", "", false, "Places every visible label without overlap tests."),
		Normals:           defineBoolFlagCommand(flagCommand, "normals", "n", false, "Treats anchor positions as surface normals and culls labels facing away from the camera."),
		OutputCoordinates: defineStringFlagCommand(flagCommand, "output-coords", "", "world", "Coordinates of the emitted positions, 'world' or 'display'."),
		Margin:            defineFloat64FlagCommand(flagCommand, "margin", "m", 0, "Padding in pixels added around every label."),
		NoReplay:          defineBoolFlagCommand(flagCommand, "no-replay", "", false, "Do not give the labels of the previous view precedence."),
	}
}

func defineLogFlags(flagCommand *flag.FlagSet) LogFlags {
	return LogFlags{
		Silent:       defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages."),
		LogTimestamp: defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages."),
		Help:         defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help."),
		Version:      defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of label_placer."),
	}
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
