/*
 * Copyright 2025 SOAPKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"
	"github.com/labstack/echo/v4"

	"github.com/soapkit/soap-sdk/soap"
)

type Client struct {
	*http.Client
	baseUrl string
	lv      log.Level
	l       log.Logger
}

func NewClient(url string, transportLogLevel log.Level, l log.Logger) *Client {
	l = Logger(l)
	return &Client{
		Client:  soap.NewHttpClient(transportLogLevel, l),
		baseUrl: strings.TrimSuffix(url, "/"),
		lv:      transportLogLevel,
		l:       l,
	}
}

// Invoke posts the single argument body to the class path of the interface
// with the quoted SOAPAction header carrying the method name.
func (c *Client) Invoke(interfaceName, method string, body io.Reader, contentType string) error {
	url := c.baseUrl + soap.ClassPath(interfaceName) + "/"
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		c.l.Debugf("fail to NewRequest err:%+v", err)
		return err
	}
	req.Header.Set(HeaderSOAPAction, `"`+method+`"`)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	c.l.Debugf("url=%s", req.URL)
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		if resp.StatusCode == http.StatusUnauthorized {
			return soap.ErrorCodeUnauthorized.Errorf("server response unauthorized")
		}
		er := &ErrorResponse{}
		if err = UnmarshalBody(resp.Body, er); err != nil {
			c.l.Debugf("fail to decode ErrorResponse err:%+v", err)
			return errors.Errorf("server response not success, StatusCode:%d",
				resp.StatusCode)
		}
		return er
	}
	return nil
}

func (c *Client) InvokeDocument(interfaceName, method string, doc soap.Document) error {
	buf := bytes.NewBuffer(nil)
	if err := doc.WriteTo(buf); err != nil {
		return err
	}
	return c.Invoke(interfaceName, method, buf, echo.MIMETextXMLCharsetUTF8)
}

func (c *Client) InvokeStream(interfaceName, method string, r io.Reader) error {
	return c.Invoke(interfaceName, method, r, echo.MIMEOctetStream)
}

func UnmarshalBody(b io.Reader, v interface{}) error {
	if err := json.NewDecoder(b).Decode(v); err != nil {
		return err
	}
	return nil
}

func (c *Client) wsID(conn *websocket.Conn) string {
	return conn.LocalAddr().String()
}

func (c *Client) wsConnect(ctx context.Context, url string) (*websocket.Conn, error) {
	url = strings.Replace(url, "http", "ws", 1)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if err == websocket.ErrBadHandshake {
			er := &ErrorResponse{}
			if err = UnmarshalBody(resp.Body, er); err != nil {
				err = errors.Errorf("server response not success, StatusCode:%d",
					resp.StatusCode)
			} else {
				err = er
			}
		}
		c.l.Debugf("fail to Dial url:%s err:%+v", url, err)
		return nil, err
	}
	c.l.Debugf("[%s]wsConnect", c.wsID(conn))
	return conn, nil
}

func (c *Client) wsClose(conn *websocket.Conn) {
	c.l.Debugf("[%s]wsClose", c.wsID(conn))
	conn.Close()
}

func (c *Client) wsReadLoop(ctx context.Context, conn *websocket.Conn, cb func(b []byte) error) error {
	id := c.wsID(conn)
	ech := make(chan error, 1)
	go func() {
		defer func() {
			c.l.Debugf("[%s]wsReadLoop finish", id)
		}()
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				ech <- err
				break
			}
			c.l.Logf(c.lv, "[%s]wsReadLoop=%s", id, b)
			if err = cb(b); err != nil {
				ech <- err
				break
			}
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-ech:
		return err
	}
}

// MonitorDispatch subscribes to the server's dispatch event stream and calls
// onEvent for each received event until the context is done or the
// connection fails.
func (c *Client) MonitorDispatch(ctx context.Context, onEvent func(e DispatchEvent) error) error {
	conn, err := c.wsConnect(ctx, c.baseUrl+UrlMonitor)
	if err != nil {
		return err
	}
	defer c.wsClose(conn)
	return c.wsReadLoop(ctx, conn, func(b []byte) error {
		ev := DispatchEvent{}
		if err := json.Unmarshal(b, &ev); err != nil {
			return err
		}
		return onEvent(ev)
	})
}
