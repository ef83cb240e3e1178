// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// workshopAppID is the Steam app ID of Crusader Kings III.
const workshopAppID = "1158310"

func joinPath(elem ...string) string { return filepath.Join(elem...) }

// defaultGameDirectory returns the game's user directory:
// Documents/Paradox Interactive/Crusader Kings III on Windows and macOS,
// ~/.local/share/Paradox Interactive/Crusader Kings III on Linux.
func defaultGameDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch runtime.GOOS {
	case "windows", "darwin":
		return filepath.Join(home, "Documents", "Paradox Interactive", "Crusader Kings III")
	default:
		return filepath.Join(home, ".local", "share", "Paradox Interactive", "Crusader Kings III")
	}
}

// defaultWorkshopDirectory returns Steam's default Workshop content folder.
func defaultWorkshopDirectory() string {
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("ProgramFiles(x86)")
		if base == "" {
			base = `C:\Program Files (x86)`
		}
		return filepath.Join(base, "Steam", "steamapps", "workshop", "content", workshopAppID)
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support", "Steam", "steamapps", "workshop", "content", workshopAppID)
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".local", "share", "Steam", "steamapps", "workshop", "content", workshopAppID)
	}
}
