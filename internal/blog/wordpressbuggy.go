package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/blogwire/blogwire/internal/entity"
)

// buggyTimeLayout is the date spelling the workaround dialect sends in
// post writes. Affected servers shift posts by the timezone offset when
// they receive a conforming date, so writes bypass the codec and carry
// this exact form instead.
const buggyTimeLayout = "20060102T15:04:05"

// wordpressBuggy works around servers that mis-handle dateTime values in
// post writes. Everything except createPost and modifyPost rides the
// normal codec; the two writes are hand-built request documents sent over
// raw HTTP.
type wordpressBuggy struct {
	movableType
}

func (wp *wordpressBuggy) name() string { return entity.DialectWordpressBuggy }

func (wp *wordpressBuggy) createMarkup(c *Client, p *entity.Post) []byte {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0"?>`)
	b.WriteString("<methodCall>")
	b.WriteString("<methodName>metaWeblog.newPost</methodName>")
	b.WriteString("<params>")
	writeStringParam(&b, c.blogID)
	writeStringParam(&b, c.username)
	writeStringParam(&b, c.password)
	wp.writeEntryStruct(&b, p, false)
	fmt.Fprintf(&b, "<param><value><boolean>%d</boolean></value></param>", boolToInt(!p.Private))
	b.WriteString("</params></methodCall>")

	return []byte(b.String())
}

func (wp *wordpressBuggy) modifyMarkup(c *Client, p *entity.Post) []byte {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0"?>`)
	b.WriteString("<methodCall>")
	b.WriteString("<methodName>metaWeblog.editPost</methodName>")
	b.WriteString("<params>")
	writeStringParam(&b, p.ID)
	writeStringParam(&b, c.username)
	writeStringParam(&b, c.password)
	wp.writeEntryStruct(&b, p, true)
	fmt.Fprintf(&b, "<param><value><boolean>%d</boolean></value></param>", boolToInt(!p.Private))
	b.WriteString("</params></methodCall>")

	return []byte(b.String())
}

func (wp *wordpressBuggy) writeEntryStruct(b *strings.Builder, p *entity.Post, modified bool) {
	b.WriteString("<param><value><struct>")
	writeStringMember(b, "description", p.Content)
	writeStringMember(b, "title", p.Title)
	writeDateMember(b, "dateCreated", p.Created)

	if modified {
		writeDateMember(b, "lastModified", p.Modified)
	}

	fmt.Fprintf(b, "<member><name>mt_allow_comments</name><value><int>%d</int></value></member>", boolToInt(p.CommentAllowed))
	fmt.Fprintf(b, "<member><name>mt_allow_pings</name><value><int>%d</int></value></member>", boolToInt(p.TrackBackAllowed))

	if p.AdditionalContent != "" {
		writeStringMember(b, "mt_text_more", p.AdditionalContent)
	}

	writeStringMember(b, "wp_slug", p.Slug)
	writeStringMember(b, "mt_excerpt", p.Summary)
	writeStringMember(b, "mt_keywords", strings.Join(p.Tags, ","))
	b.WriteString("</struct></value></param>")
}

func writeStringParam(b *strings.Builder, value string) {
	b.WriteString("<param><value><string><![CDATA[")
	b.WriteString(value)
	b.WriteString("]]></string></value></param>")
}

func writeStringMember(b *strings.Builder, name, value string) {
	b.WriteString("<member><name>")
	b.WriteString(name)
	b.WriteString("</name><value><string><![CDATA[")
	b.WriteString(value)
	b.WriteString("]]></string></value></member>")
}

func writeDateMember(b *strings.Builder, name string, t time.Time) {
	b.WriteString("<member><name>")
	b.WriteString(name)
	b.WriteString("</name><value><dateTime.iso8601>")
	b.WriteString(t.UTC().Format(buggyTimeLayout))
	b.WriteString("</dateTime.iso8601></value></member>")
}
