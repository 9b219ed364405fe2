package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://app.asana.com/api/1.0"
	// DefaultPageSize is the number of tasks requested per page.
	DefaultPageSize = 100

	tasksPathConstant                    = "/tasks"
	taskPathTemplateConstant             = "/tasks/%s"
	projectQueryParameterConstant        = "project"
	optionalFieldsQueryParameterConstant = "opt_fields"
	limitQueryParameterConstant          = "limit"
	offsetQueryParameterConstant         = "offset"
	taskOptionalFieldsConstant           = "name,custom_fields"
	authorizationHeaderConstant          = "Authorization"
	acceptHeaderConstant                 = "Accept"
	contentTypeHeaderConstant            = "Content-Type"
	bearerTokenTemplateConstant          = "Bearer %s"
	jsonMediaTypeConstant                = "application/json"
	requiredValueMessageConstant         = "value required"
	projectIdentifierFieldNameConstant   = "project_id"
	taskIdentifierFieldNameConstant      = "task_id"
	customFieldIdentifierFieldConstant   = "custom_field_id"
	enumValueIdentifierFieldConstant     = "enum_value_id"
	taskPageFetchedMessageConstant       = "fetched task page"
	taskListingCompletedMessageConstant  = "fetched all project tasks"
	logFieldProjectIdentifierConstant    = "project_id"
	logFieldPageIndexConstant            = "page_index"
	logFieldPageTaskCountConstant        = "page_task_count"
	logFieldTotalTaskCountConstant       = "total_task_count"
	logFieldHasMorePagesConstant         = "has_more_pages"
)

// HTTPClient executes HTTP requests.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// ServiceConfiguration configures TaskService.
type ServiceConfiguration struct {
	BaseURL     string
	PageSize    int
	AccessToken string
}

// TaskService lists and updates tasks through the REST API.
type TaskService struct {
	logger      *zap.Logger
	httpClient  HTTPClient
	baseURL     string
	pageSize    int
	accessToken string
}

// NewTaskService constructs a TaskService. A nil httpClient uses a default http.Client
// without a request timeout; a nil logger discards output.
func NewTaskService(logger *zap.Logger, httpClient HTTPClient, configuration ServiceConfiguration) (*TaskService, error) {
	accessToken := strings.TrimSpace(configuration.AccessToken)
	if len(accessToken) == 0 {
		return nil, ErrAccessTokenMissing
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(configuration.BaseURL), "/")
	if len(baseURL) == 0 {
		baseURL = DefaultBaseURL
	}

	pageSize := configuration.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &TaskService{
		logger:      logger,
		httpClient:  httpClient,
		baseURL:     baseURL,
		pageSize:    pageSize,
		accessToken: accessToken,
	}, nil
}

// ListProjectTasks returns every task of the project in API order. Pages are requested
// until a response carries no continuation offset. Any failure discards the pages
// collected so far.
func (service *TaskService) ListProjectTasks(executionContext context.Context, projectID string) ([]Task, error) {
	trimmedProjectID := strings.TrimSpace(projectID)
	if len(trimmedProjectID) == 0 {
		return nil, InvalidInputError{FieldName: projectIdentifierFieldNameConstant, Message: requiredValueMessageConstant}
	}

	var tasks []Task
	offset := ""
	for pageIndex := 1; ; pageIndex++ {
		page, pageError := service.fetchTaskPage(executionContext, trimmedProjectID, offset)
		if pageError != nil {
			return nil, pageError
		}

		tasks = append(tasks, page.Data...)
		hasMorePages := page.NextPage != nil && len(page.NextPage.Offset) > 0

		service.logger.Info(
			taskPageFetchedMessageConstant,
			zap.String(logFieldProjectIdentifierConstant, trimmedProjectID),
			zap.Int(logFieldPageIndexConstant, pageIndex),
			zap.Int(logFieldPageTaskCountConstant, len(page.Data)),
			zap.Bool(logFieldHasMorePagesConstant, hasMorePages),
		)

		if !hasMorePages {
			break
		}
		offset = page.NextPage.Offset
	}

	service.logger.Info(
		taskListingCompletedMessageConstant,
		zap.String(logFieldProjectIdentifierConstant, trimmedProjectID),
		zap.Int(logFieldTotalTaskCountConstant, len(tasks)),
	)

	return tasks, nil
}

// UpdateTaskCustomField sets the enum option enumValueID on the custom field customFieldID of taskID.
func (service *TaskService) UpdateTaskCustomField(executionContext context.Context, taskID string, customFieldID string, enumValueID string) error {
	inputs := []struct {
		fieldName string
		value     string
	}{
		{fieldName: taskIdentifierFieldNameConstant, value: taskID},
		{fieldName: customFieldIdentifierFieldConstant, value: customFieldID},
		{fieldName: enumValueIdentifierFieldConstant, value: enumValueID},
	}
	for _, input := range inputs {
		if len(strings.TrimSpace(input.value)) == 0 {
			return InvalidInputError{FieldName: input.fieldName, Message: requiredValueMessageConstant}
		}
	}

	payload, encodingError := json.Marshal(taskUpdateRequest{
		Data: taskUpdateData{CustomFields: map[string]string{customFieldID: enumValueID}},
	})
	if encodingError != nil {
		return PayloadEncodingError{Operation: UpdateTaskCustomFieldOperation, Cause: encodingError}
	}

	endpoint := service.baseURL + fmt.Sprintf(taskPathTemplateConstant, url.PathEscape(taskID))
	_, requestError := service.execute(executionContext, UpdateTaskCustomFieldOperation, http.MethodPut, endpoint, payload)
	return requestError
}

func (service *TaskService) fetchTaskPage(executionContext context.Context, projectID string, offset string) (taskListResponse, error) {
	queryValues := url.Values{}
	queryValues.Set(projectQueryParameterConstant, projectID)
	queryValues.Set(optionalFieldsQueryParameterConstant, taskOptionalFieldsConstant)
	queryValues.Set(limitQueryParameterConstant, strconv.Itoa(service.pageSize))
	if len(offset) > 0 {
		queryValues.Set(offsetQueryParameterConstant, offset)
	}

	endpoint := service.baseURL + tasksPathConstant + "?" + queryValues.Encode()
	responseBody, requestError := service.execute(executionContext, ListProjectTasksOperation, http.MethodGet, endpoint, nil)
	if requestError != nil {
		return taskListResponse{}, requestError
	}

	var page taskListResponse
	if decodeError := json.Unmarshal(responseBody, &page); decodeError != nil {
		return taskListResponse{}, ResponseDecodingError{Operation: ListProjectTasksOperation, Cause: decodeError}
	}
	return page, nil
}

func (service *TaskService) execute(executionContext context.Context, operation OperationName, method string, endpoint string, payload []byte) ([]byte, error) {
	var requestBody io.Reader
	if payload != nil {
		requestBody = bytes.NewReader(payload)
	}

	request, requestCreationError := http.NewRequestWithContext(executionContext, method, endpoint, requestBody)
	if requestCreationError != nil {
		return nil, RequestError{Operation: operation, Cause: requestCreationError}
	}

	request.Header.Set(authorizationHeaderConstant, fmt.Sprintf(bearerTokenTemplateConstant, service.accessToken))
	request.Header.Set(acceptHeaderConstant, jsonMediaTypeConstant)
	if payload != nil {
		request.Header.Set(contentTypeHeaderConstant, jsonMediaTypeConstant)
	}

	response, responseError := service.httpClient.Do(request)
	if responseError != nil {
		return nil, RequestError{Operation: operation, Cause: responseError}
	}
	defer response.Body.Close()

	responseBody, readError := io.ReadAll(response.Body)
	if readError != nil {
		return nil, RequestError{Operation: operation, Cause: readError}
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, RemoteError{Operation: operation, StatusCode: response.StatusCode, Body: strings.TrimSpace(string(responseBody))}
	}

	return responseBody, nil
}
