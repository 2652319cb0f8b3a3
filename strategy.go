package filechooser

// Capabilities describes what the native dialogs can do on this host.
type Capabilities struct {
	// Native is false on platforms without the Windows common dialogs.
	Native bool
	// NativeMultiSelect lets the native file dialog select several files.
	// When false, multi-selection in Files mode goes to the fallback.
	NativeMultiSelect bool
}

// SelectStrategy picks the dialog implementation for a mode. Native dialogs
// cannot mix files and directories, and the folder browser always selects
// a single directory.
func SelectStrategy(caps Capabilities, mode Mode, multi bool) Strategy {
	switch {
	case !caps.Native:
		return FallbackDialog
	case mode == FilesAndDirectories:
		return FallbackDialog
	case mode == Files:
		if multi && !caps.NativeMultiSelect {
			return FallbackDialog
		}
		return NativeFileDialog
	case mode == Directories:
		return NativeFolderBrowser
	}
	return FallbackDialog
}
