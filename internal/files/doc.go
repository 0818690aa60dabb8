// Package files finds the attendance exports of a school year.
//
// Discovery lists spreadsheet files in a directory in file-name order,
// skipping office lock files (~$name.xlsx) and any names the caller
// excludes, such as a merged file written back into the input directory.
//
//	discovery := files.NewDiscovery(paths.RootDir)
//	exports, err := discovery.FindSpreadsheets(paths.RawDir, config.OutputFileNames...)
package files
