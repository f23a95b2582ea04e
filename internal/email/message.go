package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"time"
)

// buildMessage assembles the full RFC 5322 message: headers, an HTML body
// part, and one base64-encoded attachment part per file, named by its base
// filename.
func buildMessage(from, to, subject, body string, attachments []string, now time.Time) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fmt.Fprintf(buf, "From: %s\r\n", from)
	fmt.Fprintf(buf, "To: %s\r\n", to)
	fmt.Fprintf(buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(buf, "Content-Type: multipart/mixed; boundary=%q\r\n", writer.Boundary())
	fmt.Fprintf(buf, "\r\n")

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=utf-8")
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, fmt.Errorf("create body part: %w", err)
	}
	if _, err := bodyPart.Write([]byte(body)); err != nil {
		return nil, fmt.Errorf("write body: %w", err)
	}

	for _, filename := range attachments {
		if err := attachFile(writer, filename); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), nil
}

func attachFile(writer *multipart.Writer, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read attachment %s: %w", filename, err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/octet-stream")
	header.Set("Content-Transfer-Encoding", "base64")
	header.Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(filename)))

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create attachment part: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(content)
	// 76-column lines per RFC 2045.
	for len(encoded) > 0 {
		chunk := encoded
		if len(chunk) > 76 {
			chunk = chunk[:76]
		}
		if _, err := fmt.Fprintf(part, "%s\r\n", chunk); err != nil {
			return fmt.Errorf("write attachment: %w", err)
		}
		encoded = encoded[len(chunk):]
	}
	return nil
}
