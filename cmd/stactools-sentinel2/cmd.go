// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/m-mohr/stactools-sentinel2/util"
	cli "gopkg.in/urfave/cli.v1"
)

const version = "0.1.0"

var commands = cli.Commands{
	cli.Command{
		Name:    "create-item",
		Aliases: []string{"c"},
		Usage:   "Create a STAC Item from a Sentinel-2 granule's extracted metadata",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "granule-href",
				Usage: "href of the granule (SAFE archive or Sinergise tile path)",
			},
			cli.StringFlag{
				Name:  "scene-doc",
				Usage: "href of the pre-extracted scene metadata bundle (JSON)",
			},
			cli.Float64Flag{
				Name:  "tolerance",
				Usage: "geometry simplification tolerance for the Sinergise layout",
				Value: util.GetDefaultTolerance(),
			},
			cli.StringFlag{
				Name:  "asset-href-prefix",
				Usage: "base href for image assets, replacing the granule href",
				Value: util.GetSentinelHost(),
			},
			cli.StringFlag{
				Name:  "output, o",
				Usage: "write the item JSON to this file instead of stdout",
			},
		},
		Action: createItemAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the stactools-sentinel2 CLI",
		Action:  versionAction,
	},
}

func versionAction(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, version)
	return nil
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "stactools-sentinel2"
	app.Usage = "Convert Sentinel-2 product metadata into STAC Items"
	app.Version = version
	app.Commands = commands
	return
}
