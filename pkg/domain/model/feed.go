package model

import "encoding/xml"

// ChannelFeed mirrors the XML version feed published for the distribution:
// release channels, each carrying versioned branches with download links.
type ChannelFeed struct {
	XMLName  xml.Name  `xml:"channels"`
	Channels []Channel `xml:"channel"`
}

// Channel is one release channel of the feed (stable, beta, ...)
type Channel struct {
	Name      string   `xml:"name,attr"`
	Available string   `xml:"available,attr"`
	Branches  []Branch `xml:"branch"`
}

// Branch is a version line within a channel
type Branch struct {
	Name     string       `xml:"name,attr"`
	Num      string       `xml:"num"`
	Download DownloadLink `xml:"download"`
}

// DownloadLink points at the release archive for a branch
type DownloadLink struct {
	Link string `xml:"link"`
	MD5  string `xml:"md5"`
}

// IsStable reports whether the channel is the production channel currently
// open for download. Only such channels qualify for version resolution.
func (c *Channel) IsStable() bool {
	return c.Name == "stable" && c.Available == "1"
}
