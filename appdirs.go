package main

import (
	"fmt"
	"os"
	"path/filepath"

	xappdirs "github.com/chasinglogic/appdirs"

	"github.com/ErikKalkoken/spacemap/internal/config"
)

const (
	appName          = "spacemap"
	logFileName      = "spacemap.log"
	snapshotFileName = "systems.json"
)

// appDirs represents the app's local directories for storing logs etc.
type appDirs struct {
	data     string
	log      string
	settings string
}

func newAppDirs() appDirs {
	ad := xappdirs.New(appName)
	x := appDirs{
		data:     ad.UserData(),
		log:      ad.UserLog(),
		settings: ad.UserConfig(),
	}
	return x
}

func (ad appDirs) deleteAll() error {
	for _, p := range []string{ad.log, ad.data, ad.settings} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", p)
	}
	return nil
}

func (ad appDirs) initLogFile() (string, error) {
	if err := os.MkdirAll(ad.log, os.ModePerm); err != nil {
		return "", err
	}
	return filepath.Join(ad.log, logFileName), nil
}

// snapshotPath returns the path of the snapshot file.
// The folder is created by the store when saving.
func (ad appDirs) snapshotPath() string {
	return filepath.Join(ad.data, snapshotFileName)
}

// configPath returns the path of the default config file.
func (ad appDirs) configPath() string {
	return filepath.Join(ad.settings, config.FileName)
}
