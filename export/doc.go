// Package export encodes composited captures and writes them to disk.
//
// Supported formats are PNG, JPEG, BMP, TIFF and single-image PDF. Paths
// generated by DefaultPath are confined to the user's home directory;
// paths chosen explicitly by the user are written as given.
package export
