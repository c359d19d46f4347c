package labeling

// Contains the options of a command line run
type RunOptions struct {
	Input            string   // Scene file or folder of scene files
	Output           string   // Output folder for placement reports
	FolderProcessing bool     // Enables the processing of all scene files in folder
	Recursive        bool     // Recursive lookup of scene files in subfolders
	ZOffset          float64  // Offset added to the anchor heights during conversion
	Precision        int32    // Decimals kept for coordinates written to reports
	Command          string   // Subcommand being run
	Placement        *Options // Defaults for scenes without a placement table
}

func (opt *RunOptions) Copy() *RunOptions {
	newOpt := *opt
	if opt.Placement != nil {
		newOpt.Placement = opt.Placement.Copy()
	}
	return &newOpt
}
