package dto

import "encoding/xml"

// TwilioWebhookRequest carries the form fields Twilio posts on each call leg.
type TwilioWebhookRequest struct {
	CallSID      string
	From         string
	To           string
	SpeechResult string
	Confidence   float64
}

// TwiML is the markup document returned to Twilio. At most one playback and
// one gather per response, plus a redirect for gather timeouts.
type TwiML struct {
	XMLName  xml.Name       `xml:"Response"`
	Play     *TwiMLPlay     `xml:"Play,omitempty"`
	Say      *TwiMLSay      `xml:"Say,omitempty"`
	Gather   *TwiMLGather   `xml:"Gather,omitempty"`
	Redirect *TwiMLRedirect `xml:"Redirect,omitempty"`
	Hangup   *TwiMLHangup   `xml:"Hangup,omitempty"`
}

type TwiMLPlay struct {
	URL string `xml:",chardata"`
}

type TwiMLSay struct {
	Voice string `xml:"voice,attr,omitempty"`
	Text  string `xml:",chardata"`
}

type TwiMLGather struct {
	Input         string     `xml:"input,attr"`
	Action        string     `xml:"action,attr"`
	Method        string     `xml:"method,attr"`
	SpeechTimeout string     `xml:"speechTimeout,attr"`
	Timeout       int        `xml:"timeout,attr"`
	Play          *TwiMLPlay `xml:"Play,omitempty"`
	Say           *TwiMLSay  `xml:"Say,omitempty"`
}

type TwiMLRedirect struct {
	Method string `xml:"method,attr"`
	URL    string `xml:",chardata"`
}

type TwiMLHangup struct{}

// Encode renders the document with an XML declaration, the form Twilio
// expects.
func (t *TwiML) Encode() ([]byte, error) {
	body, err := xml.Marshal(t)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
