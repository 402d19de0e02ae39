// Package loader reads component resources (templates and stylesheets) for
// module compilation.
//
// A FileLoader resolves resource URLs against a root directory. URLs that
// would escape the root are rejected (E131); missing files are E130. An
// optional Manifest maps URLs to fingerprinted file names.
//
// A Watcher reports changes below the root so compiled factories can be
// dropped in development:
//
//	w, _ := loader.NewWatcher(loader.DefaultWatcherConfig("web"), logger)
//	go w.Watch(ctx, func(paths []string) error {
//	    eng.Cache().Purge()
//	    return nil
//	})
package loader
