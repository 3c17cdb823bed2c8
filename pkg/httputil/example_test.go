package httputil_test

import (
	"fmt"
	"net/http/httptest"

	"github.com/matzehuels/sigil/pkg/errors"
	"github.com/matzehuels/sigil/pkg/httputil"
)

func ExampleWriteError() {
	rec := httptest.NewRecorder()
	httputil.WriteError(rec, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: gif"))
	fmt.Println(rec.Code)
	fmt.Print(rec.Body.String())
	// Output:
	// 400
	// {
	//   "error": {
	//     "code": "INVALID_FORMAT",
	//     "message": "unsupported format: gif"
	//   }
	// }
}
