package router

import (
	"codeberg.org/inkwell/inkwell/config"
	"codeberg.org/inkwell/inkwell/core/pagecache"
	"codeberg.org/inkwell/inkwell/server/middleware"
	"codeberg.org/inkwell/inkwell/server/middleware/limiter"
	"codeberg.org/inkwell/inkwell/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware(cache *pagecache.Cache) {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)                // handle trailing slashes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all pages need this

	if config.Global.Limiter.Enabled {
		limiter.Init()

		router.Use(limiter.Evaluate)
	}

	if config.Global.PageCache.Enabled {
		router.Use(middleware.CachePages(cache))
	}
}
