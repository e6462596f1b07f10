package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007

	// ErrInvalidQuery indicates that the query string carried a property other than the allowed one.
	ErrInvalidQuery = 1008

	// ErrInvalidID indicates that a path identifier is not a positive integer.
	ErrInvalidID = 1009

	// ErrRouteNotFound indicates that no route matched the request.
	ErrRouteNotFound = 1010
)

// 2xxx: Partial Update Errors
const (
	// ErrEmptyUpdate indicates that an update payload carried no fields.
	ErrEmptyUpdate = 2001

	// ErrFieldNotUpdatable indicates that an update payload named a field outside the entity's allow-list.
	ErrFieldNotUpdatable = 2002

	// ErrInvalidFieldValue indicates that a field value has the wrong type or violates its rules.
	ErrInvalidFieldValue = 2003
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates that the request needs an authenticated identity.
	ErrUnauthorized = 3001

	// ErrInvalidCredentials indicates that the username/password pair did not match.
	ErrInvalidCredentials = 3002

	// ErrUserAlreadyExists indicates that the username or email is already registered.
	ErrUserAlreadyExists = 3003

	// ErrNotAccountOwner indicates that the identity tried to act on another user's account.
	ErrNotAccountOwner = 3101

	// ErrNotRecipeAuthor indicates that the identity did not create the recipe.
	ErrNotRecipeAuthor = 3102

	// ErrNotRecipeReviewAuthor indicates that the identity did not write the recipe review.
	ErrNotRecipeReviewAuthor = 3103

	// ErrNotRemixAuthor indicates that the identity did not create the remix.
	ErrNotRemixAuthor = 3104

	// ErrNotRemixReviewAuthor indicates that the identity did not write the remix review.
	ErrNotRemixReviewAuthor = 3105
)

// 4xxx: Resource Errors
const (
	// ErrUserNotFound indicates that no user has the requested username.
	ErrUserNotFound = 4001

	// ErrRecipeNotFound indicates that no recipe has the requested id.
	ErrRecipeNotFound = 4002

	// ErrRecipeReviewNotFound indicates that no recipe review has the requested id.
	ErrRecipeReviewNotFound = 4003

	// ErrRemixNotFound indicates that no remix has the requested id.
	ErrRemixNotFound = 4004

	// ErrRemixReviewNotFound indicates that no remix review has the requested id.
	ErrRemixReviewNotFound = 4005

	// ErrAlreadyFavorited indicates that the item is already in the user's favorites.
	ErrAlreadyFavorited = 4101

	// ErrFavoriteNotFound indicates that the item is not in the user's favorites.
	ErrFavoriteNotFound = 4102

	// ErrImageTypeInvalid indicates that an image upload has an unsupported MIME type or extension.
	ErrImageTypeInvalid = 4201

	// ErrImageTooLarge indicates that an image upload exceeds the size limit.
	ErrImageTooLarge = 4202

	// ErrImageKeyInvalid indicates that a file key does not belong to the item being updated.
	ErrImageKeyInvalid = 4203

	// ErrImageNotUploaded indicates that no object exists yet under the confirmed file key.
	ErrImageNotUploaded = 4204
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrImageStorageFailed indicates that the object storage rejected a request.
	ErrImageStorageFailed = 5001

	// ErrImageStorageDisabled indicates that object storage is not configured.
	ErrImageStorageDisabled = 5002
)
