package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/m-mohr/stactools-sentinel2/scenedoc"
	"github.com/m-mohr/stactools-sentinel2/sentinel2"
	"github.com/m-mohr/stactools-sentinel2/util"
	cli "gopkg.in/urfave/cli.v1"
)

var createItemFunc = sentinel2.CreateItem

func createItemAction(c *cli.Context) error {
	granuleHref := c.String("granule-href")
	if granuleHref == "" {
		granuleHref = c.Args().First()
	}
	if granuleHref == "" {
		return errors.New("a granule href is required (--granule-href or first argument)")
	}
	sceneDocHref := c.String("scene-doc")
	if sceneDocHref == "" {
		return errors.New("an extracted scene metadata bundle is required (--scene-doc)")
	}

	ctx := &sentinel2.Context{}
	doc, err := scenedoc.Load(ctx, sceneDocHref, nil)
	if err != nil {
		return err
	}

	item, err := createItemFunc(ctx, granuleHref, sentinel2.CreateItemOptions{
		Tolerance:       c.Float64("tolerance"),
		AssetHrefPrefix: c.String("asset-href-prefix"),
		Readers:         doc.Readers(),
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return util.LogSimpleErr(ctx, "Failed to marshal the item.", err)
	}

	if output := c.String("output"); output != "" {
		return os.WriteFile(output, append(data, '\n'), 0644)
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}
