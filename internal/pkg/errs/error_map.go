package errs

import "net/http"

// errorMap holds the message template and HTTP status of every code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Bad Request, missing/invalid parameters", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Request body is not valid JSON.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrInvalidQuery:         {Code: ErrInvalidQuery, Message: "The query string must only contain the non-empty property '%s'.", Status: http.StatusBadRequest},
	ErrInvalidID:            {Code: ErrInvalidID, Message: "The %s must be a positive integer.", Status: http.StatusBadRequest},
	ErrRouteNotFound:        {Code: ErrRouteNotFound, Message: "Not Found", Status: http.StatusNotFound},

	// 2xxx: Partial Update Errors
	ErrEmptyUpdate:       {Code: ErrEmptyUpdate, Message: "Please provide data to update.", Status: http.StatusBadRequest},
	ErrFieldNotUpdatable: {Code: ErrFieldNotUpdatable, Message: "The field '%s' cannot be updated.", Status: http.StatusBadRequest},
	ErrInvalidFieldValue: {Code: ErrInvalidFieldValue, Message: "The value of '%s' is invalid: %s", Status: http.StatusBadRequest},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:          {Code: ErrUnauthorized, Message: "You must be logged in to access this!", Status: http.StatusUnauthorized},
	ErrInvalidCredentials:    {Code: ErrInvalidCredentials, Message: "Invalid username/password", Status: http.StatusUnauthorized},
	ErrUserAlreadyExists:     {Code: ErrUserAlreadyExists, Message: "The username or email is already taken.", Status: http.StatusBadRequest},
	ErrNotAccountOwner:       {Code: ErrNotAccountOwner, Message: "You can only edit/delete information from your own account!", Status: http.StatusForbidden},
	ErrNotRecipeAuthor:       {Code: ErrNotRecipeAuthor, Message: "You can't edit this recipe because you didn't create it.", Status: http.StatusForbidden},
	ErrNotRecipeReviewAuthor: {Code: ErrNotRecipeReviewAuthor, Message: "You can't edit this recipe review because you didn't create it.", Status: http.StatusForbidden},
	ErrNotRemixAuthor:        {Code: ErrNotRemixAuthor, Message: "You can't edit this remix because you didn't create it.", Status: http.StatusForbidden},
	ErrNotRemixReviewAuthor:  {Code: ErrNotRemixReviewAuthor, Message: "You can't edit this remix review because you didn't create it.", Status: http.StatusForbidden},

	// 4xxx: Resource Errors
	ErrUserNotFound:         {Code: ErrUserNotFound, Message: "The user with username of %v was not found in the database.", Status: http.StatusNotFound},
	ErrRecipeNotFound:       {Code: ErrRecipeNotFound, Message: "The recipe with id of %v was not found in the database.", Status: http.StatusNotFound},
	ErrRecipeReviewNotFound: {Code: ErrRecipeReviewNotFound, Message: "The recipe review with id of %v was not found in the database.", Status: http.StatusNotFound},
	ErrRemixNotFound:        {Code: ErrRemixNotFound, Message: "The remix with id of %v was not found in the database.", Status: http.StatusNotFound},
	ErrRemixReviewNotFound:  {Code: ErrRemixReviewNotFound, Message: "The remix review with id of %v was not found in the database.", Status: http.StatusNotFound},
	ErrAlreadyFavorited:     {Code: ErrAlreadyFavorited, Message: "This item is already in your favorites.", Status: http.StatusBadRequest},
	ErrFavoriteNotFound:     {Code: ErrFavoriteNotFound, Message: "This item is not in your favorites.", Status: http.StatusNotFound},
	ErrImageTypeInvalid:     {Code: ErrImageTypeInvalid, Message: "Only JPEG, PNG, WebP and GIF images are supported.", Status: http.StatusBadRequest},
	ErrImageTooLarge:        {Code: ErrImageTooLarge, Message: "Image is too large.", Status: http.StatusBadRequest},
	ErrImageKeyInvalid:      {Code: ErrImageKeyInvalid, Message: "The file key does not belong to this item.", Status: http.StatusBadRequest},
	ErrImageNotUploaded:     {Code: ErrImageNotUploaded, Message: "The image has not been uploaded yet.", Status: http.StatusBadRequest},

	// 5xxx: Internal System Errors
	ErrUnknown:              {Code: ErrUnknown, Message: "An error has occurred", Status: http.StatusInternalServerError},
	ErrImageStorageFailed:   {Code: ErrImageStorageFailed, Message: "Image upload failed. Please try again.", Status: http.StatusInternalServerError},
	ErrImageStorageDisabled: {Code: ErrImageStorageDisabled, Message: "Image uploads are not available.", Status: http.StatusServiceUnavailable},
}
