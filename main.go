/*
 * This file is part of the Go Cesium Point Cloud Tiler distribution (https://github.com/mfbonfigli/gocesiumtiler).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/pkg"
	"github.com/ecopia-map/label_placer/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/label_placer/tools"
	"github.com/golang/glog"
)

const VERSION = "0.4.0"

const logo = `
 _       _          _          _
| | __ _| |__   ___| |   _ __ | | __ _  ___ ___ _ __
| |/ _  | '_ \ / _ \ |  | '_ \| |/ _  |/ __/ _ \ '__|
| | (_| | |_) |  __/ |  | |_) | | (_| | (_|  __/ |
|_|\__,_|_.__/ \___|_|  | .__/|_|\__,_|\___\___|_|
   Label hierarchy placement  |_|  Copyright YYYY
`

func main() {
	log.SetPrefix("[label_placer] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds | log.Lshortfile)

	flagsGlobal := tools.ParseFlagsGlobal()
	defer glog.Flush()

	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("Please specify a subcommand [index|place|batch|verify].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandIndex:
		mainCommandIndex(args)
	case tools.CommandPlace, tools.CommandBatch:
		mainCommandPlace(cmd, args)
	case tools.CommandVerify:
		mainCommandVerify(args)
	default:
		log.Fatalf("Unrecognized command [%q]. Command must be one of [index|place|batch|verify]", cmd)
	}
}

func mainCommandIndex(args []string) {
	// Retrieve command line args
	flags := tools.ParseFlagsForCommandIndex(args)
	if handleLogFlags(flags.LogFlags) {
		return
	}

	opts, msg, ok := runOptionsFromFlags(tools.CommandIndex, flags.InputFlags, flags.PlacementFlags)
	if !ok {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	// Validate RunOptions
	if msg, res := validateOptionsForCommandIndex(opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	defer timeTrack(time.Now(), "index")
	err := pkg.NewLabelIndex(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).Run(opts)
	if err != nil {
		log.Fatal("Error while building the label hierarchy: ", err)
	}
	tools.LogOutput("Indexing Completed")
}

func mainCommandPlace(command string, args []string) {
	flags := tools.ParseFlagsForCommandPlace(command, args)
	if handleLogFlags(flags.LogFlags) {
		return
	}

	opts, msg, ok := runOptionsFromFlags(command, flags.InputFlags, flags.PlacementFlags)
	if !ok {
		log.Fatal("Error parsing input parameters: " + msg)
	}
	opts.Output = *flags.Output
	opts.Precision = int32(*flags.Precision)

	// Validate RunOptions
	if msg, res := validateOptionsForCommandPlace(opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	defer timeTrack(time.Now(), command)
	algorithmManager := std_algorithm_manager.NewAlgorithmManager(opts)
	var labeler pkg.ILabeler
	if command == tools.CommandBatch {
		labeler = pkg.NewLabelBatch(tools.NewStandardFileFinder(), algorithmManager)
	} else {
		labeler = pkg.NewLabelPlacer(tools.NewStandardFileFinder(), algorithmManager)
	}
	if err := labeler.Run(opts); err != nil {
		log.Fatal("Error while placing labels: ", err)
	}
	tools.LogOutput("Placement Completed")
}

func mainCommandVerify(args []string) {
	flags := tools.ParseFlagsForCommandVerify(args)
	if handleLogFlags(flags.LogFlags) {
		return
	}

	opts, msg, ok := runOptionsFromFlags(tools.CommandVerify, flags.InputFlags, flags.PlacementFlags)
	if !ok {
		log.Fatal("Error parsing input parameters: " + msg)
	}
	if msg, res := validateOptionsForCommandIndex(opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	err := pkg.NewLabelVerify(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).Run(opts)
	if err != nil {
		log.Fatal("Verification failed: ", err)
	}
	tools.LogOutput("Verification Completed")
}

// Applies help, version, silent and timestamp flags. Returns true when the command should stop.
func handleLogFlags(flags tools.LogFlags) bool {
	if *flags.Help {
		showHelp()
		return true
	}
	if *flags.Version {
		printVersion()
		return true
	}

	// set logging and timestamp logging
	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}
	return false
}

// Put args inside a RunOptions struct
func runOptionsFromFlags(command string, input tools.InputFlags, placement tools.PlacementFlags) (*labeling.RunOptions, string, bool) {
	strategy, ok := labeling.ParseStrategy(*placement.Strategy)
	if !ok {
		return nil, "strategy should be one of full-sort, queue, depth-first, frustum", false
	}
	gravity, ok := labeling.ParseGravity(*placement.Gravity)
	if !ok {
		return nil, "gravity should be written as <left|center|right>-<bottom|baseline|center|top>", false
	}

	placementOptions := labeling.DefaultOptions()
	placementOptions.Strategy = strategy
	placementOptions.Gravity = gravity
	placementOptions.TargetLabelCount = *placement.TargetLabelCount
	placementOptions.MaximumDepth = *placement.MaximumDepth
	placementOptions.TileSize = [2]float64{*placement.TileSize, *placement.TileSize}
	placementOptions.MaximumLabelFraction = *placement.LabelFraction
	placementOptions.EnforceAreaBudget = *placement.EnforceBudget
	placementOptions.PlaceAllLabels = *placement.PlaceAll
	placementOptions.PositionsAsNormals = *placement.Normals
	placementOptions.OutputCoordinates = labeling.ParseOutputCoordinates(*placement.OutputCoordinates)
	placementOptions.Margin = *placement.Margin
	placementOptions.ReplayLastPlaced = !*placement.NoReplay
	if err := placementOptions.Validate(); err != nil {
		return nil, err.Error(), false
	}

	return &labeling.RunOptions{
		Input:            *input.Input,
		FolderProcessing: *input.FolderProcessing,
		Recursive:        *input.RecursiveFolderProcessing,
		ZOffset:          *input.ZOffset,
		Command:          command,
		Placement:        placementOptions,
	}, "", true
}

// Validates the input options provided to the command line tool checking
// that input files/folders exist
func validateOptionsForCommandIndex(opts *labeling.RunOptions) (string, bool) {
	if !tools.PathExists(opts.Input) {
		return "Input file/folder not found", false
	}
	return "", true
}

func validateOptionsForCommandPlace(opts *labeling.RunOptions) (string, bool) {
	if msg, ok := validateOptionsForCommandIndex(opts); !ok {
		return msg, false
	}
	if opts.Output == "" {
		return "Output folder not specified", false
	}
	if !tools.PathExists(opts.Output) {
		return "Output folder not found", false
	}
	if opts.Precision < 0 {
		return "precision cannot be negative", false
	}
	return "", true
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("label_placer builds a label hierarchy over the anchors of a scene and places non overlapping labels for each of its views")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: label_placer [-v=N -logtostderr] <index|place|batch|verify> [flags]")
	fmt.Println("Run a command with -h to list its flags.")
	fmt.Println("")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
