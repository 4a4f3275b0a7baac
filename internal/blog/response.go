package blog

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// wireFault is a server-reported fault inside a hand-issued request's
// response document.
type wireFault struct {
	code    int
	message string
}

// decodeMethodResponse reads the response document of a hand-issued
// request and returns its single value. Server faults come back as a
// wireFault, structural problems as an error.
func decodeMethodResponse(data []byte) (any, *wireFault, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))

	if err != nil {
		return nil, nil, err
	}

	if f := xmlquery.FindOne(doc, "//methodResponse/fault"); f != nil {
		fault := &wireFault{message: "unknown server fault"}

		if n := xmlquery.FindOne(f, ".//member[name='faultString']/value"); n != nil {
			fault.message = strings.TrimSpace(n.InnerText())
		}

		if n := xmlquery.FindOne(f, ".//member[name='faultCode']/value"); n != nil {
			fault.code, _ = strconv.Atoi(strings.TrimSpace(n.InnerText()))
		}

		return nil, fault, nil
	}

	v := xmlquery.FindOne(doc, "//methodResponse/params/param/value")

	if v == nil {
		return nil, nil, errors.New("response carries no value")
	}

	return decodeResponseValue(v), nil, nil
}

func decodeResponseValue(v *xmlquery.Node) any {
	if n := v.SelectElement("boolean"); n != nil {
		return strings.TrimSpace(n.InnerText()) == "1"
	}

	for _, name := range []string{"int", "i4"} {
		if n := v.SelectElement(name); n != nil {
			i, err := strconv.ParseInt(strings.TrimSpace(n.InnerText()), 10, 64)

			if err != nil {
				return strings.TrimSpace(n.InnerText())
			}

			return i
		}
	}

	if n := v.SelectElement("string"); n != nil {
		return n.InnerText()
	}

	// An untyped value is a string per the wire format.
	return v.InnerText()
}
