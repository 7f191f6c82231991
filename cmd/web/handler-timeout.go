package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<html lang="en">
<head><title>Request timed out</title></head>
<body>
<h1>Request timed out</h1>
<div>
    <p>The quiz took too long to respond.</p>
    <button type="button">
        <span>Try again</span>
        <script>
          document.currentScript.parentElement.addEventListener('click', function () {
            location.reload();
          });
        </script>
    </button>
</div>
</body>
</html>
`

// timeoutHandler serves a 503 with a retry page when a handler misses its
// deadline. The timeout runs slightly shorter than the server's read timeout
// so the page goes out before the connection is closed.
func timeoutHandler(h http.Handler, defaultTimeout time.Duration) http.Handler {
	httpHandlerTimeout := defaultTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	return http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
}
