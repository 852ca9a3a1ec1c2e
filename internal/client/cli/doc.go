// Package cli provides the interactive graphauth command-line client.
//
// The REPL registers accounts and logs in with graphical passwords. Click
// points are typed as hidden "x,y" percentages of the reference image;
// image sequences are picked by hidden tile numbers from a shuffled grid.
// A background watcher pings the server and shows online/offline in the
// prompt.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
