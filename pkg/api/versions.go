package api

import (
	"context"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
)

// UpdateVersion renames a version and replaces its description. The last
// write wins; the API offers no concurrency token.
func UpdateVersion(ctx context.Context, appKey, versionName string, update VersionUpdate) error {
	logger.Debug("Updating version", "app", appKey, "version", versionName, "new_name", update.Name)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"appKey":      appKey,
			"versionName": versionName,
		}).
		SetBody(update).
		Put("/apps/{appKey}/versions/{versionName}")

	return CheckResponse(resp, err)
}
