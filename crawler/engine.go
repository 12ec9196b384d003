package crawler

import (
	"net/url"
)

// QueryParam is one fixed query parameter appended after the keyword.
type QueryParam struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type SearchEngine struct {
	Name         string       `yaml:"name"`
	BaseURL      string       `yaml:"base_url"`
	KeywordParam string       `yaml:"keyword_param"`
	Params       []QueryParam `yaml:"params"`
	ItemSelector string       `yaml:"item_selector"`
}

// NaverBlog is the blog tab of Naver search.
func NaverBlog() SearchEngine {
	return SearchEngine{
		Name:         "NaverBlog",
		BaseURL:      "https://search.naver.com/search.naver",
		KeywordParam: "query",
		Params: []QueryParam{
			{Key: "ssc", Value: "tab.blog.all"},
			{Key: "sm", Value: "tab_jum"},
			{Key: "where", Value: "post"},
		},
		ItemSelector: "#main_pack > section.sc_new.sp_nblog._fe_view_root._prs_blg._sp_nblog " +
			"> div.api_subject_bx > ul > li > div > div.detail_box " +
			"> div.title_area > a",
	}
}

// SearchURL builds the results page URL for keyword.
func (e SearchEngine) SearchURL(keyword string) (string, error) {
	u, err := url.Parse(e.BaseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(e.KeywordParam, keyword)
	for _, p := range e.Params {
		q.Set(p.Key, p.Value)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
