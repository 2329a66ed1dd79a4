package sitegen

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devtechai/sitegen/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapURLs lists the home page followed by every table page in table order.
func sitemapURLs(base string, tables []content.Table) []sitemapURL {
	urls := []sitemapURL{{Loc: BuildURL(base)}}
	for _, t := range tables {
		for _, r := range t.Records {
			urls = append(urls, sitemapURL{Loc: BuildURL(base, t.Dir, r.OutputName())})
		}
	}
	return urls
}

func (a *App) renderSitemap(c echo.Context, tables []content.Table) error {
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  sitemapURLs(a.Config.URL, tables),
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
